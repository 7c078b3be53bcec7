package handler

import (
	"dealflow/dto"
	"dealflow/model"
	"dealflow/repository"
	"dealflow/usecase"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
)

func taskService() *usecase.TaskService {
	return &usecase.TaskService{
		Tasks: repository.GetTasksRepo(utils.MongoClient),
	}
}

// ListTasksHandler returns the agenda sorted by due date plus its
// rollup counters.
func ListTasksHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	tasks, stats, err := taskService().ListTasks(c, userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch tasks")
		return
	}

	utils.Success(c, dto.AgendaResponse{Tasks: tasks, Stats: stats})
}

func CreateTaskHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var task model.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	task.UserID = userID.(string)

	if err := taskService().CreateTask(c, &task); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"task": task})
}

func UpdateTaskHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := taskService().UpdateTask(c, c.Param("id"), userID.(string), updates); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Task updated successfully"})
}

// ToggleTaskHandler flips a task between done and pending.
func ToggleTaskHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	completed, err := taskService().ToggleComplete(c, c.Param("id"), userID.(string))
	if err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, "Failed to update task")
		return
	}

	utils.Success(c, gin.H{
		"message":   "Task updated",
		"completed": completed,
	})
}

func DeleteTaskHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := taskService().DeleteTask(c, c.Param("id"), userID.(string)); err != nil {
		if isNotFound(err) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, "Failed to delete task")
		return
	}

	utils.Success(c, gin.H{"message": "Task deleted successfully"})
}
