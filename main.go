package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"taskboard-api/events"
	"taskboard-api/models"
	"taskboard-api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./tasks.db"
	}
	utils.InitDB(dbPath)
	defer utils.CloseDB()

	broker := events.NewBroker()
	r := setupRouter(broker)

	// Serve the board front end when it has been built alongside the binary.
	if _, err := os.Stat("./public"); err == nil {
		r.Static("/public", "./public")
		r.StaticFile("/", "./public/index.html")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	r.Run(":" + port)
}

func setupRouter(broker *events.Broker) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		if err := utils.GetDB().Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// GET /api/tasks - List all tasks, optionally filtered by owner
	r.GET("/api/tasks", func(c *gin.Context) {
		tasks, err := utils.ListTasks(c.Query("owner"))
		if err != nil {
			log.Printf("Failed to list tasks: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
			return
		}
		c.JSON(http.StatusOK, tasks)
	})

	// POST /api/tasks - Add a new task
	r.POST("/api/tasks", func(c *gin.Context) {
		var input models.TaskInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		task, err := utils.CreateTask(input)
		if err != nil {
			var verr *utils.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			log.Printf("Failed to create task: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
			return
		}

		broker.Broadcast(events.TaskCreated, task)
		c.JSON(http.StatusCreated, task)
	})

	// PUT /api/tasks/:id - Partially update an existing task
	r.PUT("/api/tasks/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}

		var patch models.TaskPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		task, err := utils.UpdateTask(id, patch)
		if err != nil {
			respondError(c, err, "Failed to update task")
			return
		}

		broker.Broadcast(events.TaskUpdated, task)
		c.JSON(http.StatusOK, task)
	})

	// PATCH /api/tasks/:id/move - Move a task to a column position
	r.PATCH("/api/tasks/:id/move", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}

		var move models.TaskMove
		if err := c.ShouldBindJSON(&move); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		task, err := utils.MoveTask(id, move)
		if err != nil {
			respondError(c, err, "Failed to move task")
			return
		}

		broker.Broadcast(events.TaskUpdated, task)
		c.JSON(http.StatusOK, task)
	})

	// DELETE /api/tasks/:id - Delete a task
	r.DELETE("/api/tasks/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}

		if err := utils.DeleteTask(id); err != nil {
			respondError(c, err, "Failed to delete task")
			return
		}

		broker.Broadcast(events.TaskDeleted, models.DeletedTask{ID: id})
		c.Status(http.StatusNoContent)
	})

	// GET /api/events - Event stream for connected board viewers
	r.GET("/api/events", func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		ch := broker.Subscribe()
		defer broker.Unsubscribe(ch)

		c.Writer.WriteString(": connected\n\n")
		c.Writer.Flush()

		c.Stream(func(w io.Writer) bool {
			select {
			case msg, ok := <-ch:
				if !ok {
					return false
				}
				sse.Encode(w, sse.Event{Event: msg.Event, Data: msg.Data})
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	})

	return r
}

func respondError(c *gin.Context, err error, fallback string) {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	var nferr *utils.NotFoundError
	if errors.As(err, &nferr) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	log.Printf("%s: %v", fallback, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
