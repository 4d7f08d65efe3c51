package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/usecase"
)

var errBadRequest = errors.New("bad request")

// Tasks

func (s *Server) handleListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, listJSON(s.items.Tasks(), taskJSON))
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := s.items.GetTask(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskJSON(task))
}

func (s *Server) handleSaveTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	task, err := req.task()
	if err != nil {
		s.writeError(c, err)
		return
	}

	if task.ID == 0 {
		task, err = s.items.CreateTask(task)
	} else {
		task, err = s.items.UpdateTask(task)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskJSON(task))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.items.DeleteTask(id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Subtasks

func (s *Server) handleListSubtasks(c *gin.Context) {
	c.JSON(http.StatusOK, listJSON(s.items.Subtasks(), subtaskJSON))
}

func (s *Server) handleGetSubtask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	subtask, err := s.items.GetSubtask(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subtaskJSON(subtask))
}

func (s *Server) handleSaveSubtask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	if req.ID == 0 && req.EpicID == 0 {
		s.writeError(c, fmt.Errorf("%w: %w", errBadRequest, domain.ErrEpicRequired))
		return
	}
	task, err := req.task()
	if err != nil {
		s.writeError(c, err)
		return
	}

	subtask := domain.Subtask{Task: task, EpicID: req.EpicID}
	err = domain.Atomically(s.items, func(m domain.TaskManager) error {
		return saveSubtask(m, &subtask)
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subtaskJSON(subtask))
}

// saveSubtask creates or updates subtask in m. The epic is checked in the
// same call so it cannot disappear between the check and the write.
func saveSubtask(m domain.TaskManager, subtask *domain.Subtask) error {
	if subtask.EpicID == 0 {
		subtask.EpicID = currentEpic(m, subtask.ID)
	} else if _, err := m.EpicSubtasks(subtask.EpicID); err != nil {
		return err
	}

	var (
		saved domain.Subtask
		err   error
	)
	if subtask.ID == 0 {
		saved, err = m.CreateSubtask(*subtask)
	} else {
		saved, err = m.UpdateSubtask(*subtask)
	}
	if err != nil {
		return err
	}
	*subtask = saved
	return nil
}

// currentEpic returns the epic a stored subtask belongs to, or 0.
func currentEpic(m domain.TaskManager, id int) int {
	for _, st := range m.Subtasks() {
		if st.ID == id {
			return st.EpicID
		}
	}
	return 0
}

func (s *Server) handleDeleteSubtask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.items.DeleteSubtask(id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Epics

func (s *Server) handleListEpics(c *gin.Context) {
	c.JSON(http.StatusOK, listJSON(s.items.Epics(), epicJSON))
}

func (s *Server) handleGetEpic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	epic, err := s.items.GetEpic(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, epicJSON(epic))
}

func (s *Server) handleEpicSubtasks(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	subtasks, err := s.items.EpicSubtasks(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listJSON(subtasks, subtaskJSON))
}

func (s *Server) handleSaveEpic(c *gin.Context) {
	var req epicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	epic := domain.NewEpic(req.Title, req.Description)
	epic.ID = req.ID

	var err error
	if epic.ID == 0 {
		epic, err = s.items.CreateEpic(epic)
	} else {
		epic, err = s.items.UpdateEpic(epic)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, epicJSON(epic))
}

func (s *Server) handleDeleteEpic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.items.DeleteEpic(id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// History and schedule

func (s *Server) handleHistory(c *gin.Context) {
	var q struct {
		Limit int `form:"limit" binding:"min=0"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		s.writeError(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	out, err := usecase.NewShowHistory(s.items).Execute(c.Request.Context(), usecase.ShowHistoryInput{Limit: q.Limit})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listJSON(out.Items, toJSON))
}

func (s *Server) handlePrioritized(c *gin.Context) {
	from, err := domain.ParseStartTime(c.Query("from"))
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	out, err := usecase.NewShowPrioritized(s.items).Execute(c.Request.Context(), usecase.ShowPrioritizedInput{From: from})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, listJSON(out.Items, toJSON))
}

// Helpers

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid id %q", c.Param("id"))})
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to status codes. Mutations that were applied
// in memory but failed to persist still report 500.
func (s *Server) writeError(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error(0, "http", fmt.Sprintf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err))
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTaskIntersection):
		return http.StatusNotAcceptable
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrInvalidStartTime),
		errors.Is(err, domain.ErrEpicRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
