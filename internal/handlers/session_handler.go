package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/phrase-sort-service/internal/exercise"
	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
	"github.com/SAP-F-2025/phrase-sort-service/internal/services"
	"github.com/SAP-F-2025/phrase-sort-service/internal/utils"
	"github.com/SAP-F-2025/phrase-sort-service/internal/validator"
	"github.com/gin-gonic/gin"
)

const maxImportSize = 10 << 20

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
	importService  services.ImportService
	validator      *validator.Validator
}

// ActionRequest is the wire form of one store action.
type ActionRequest struct {
	Type    string          `json:"type" validate:"required,action_kind"`
	Payload json.RawMessage `json:"payload"`
}

type ImportSessionResponse struct {
	Session *services.SessionResponse `json:"session"`
	Import  *services.ImportResult    `json:"import"`
}

func NewSessionHandler(
	sessionService services.SessionService,
	importService services.ImportService,
	validator *validator.Validator,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
		importService:  importService,
		validator:      validator,
	}
}

// CreateSession mounts a widget for a question set
// @Summary Create exercise session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body services.CreateSessionRequest true "Title and question set"
// @Success 201 {object} services.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	h.LogRequest(c, "Creating exercise session")

	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	session, err := h.sessionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ImportSession mounts a widget for a question set uploaded as a spreadsheet
// @Summary Create exercise session from a spreadsheet
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx or csv question set"
// @Param title formData string false "Exercise title"
// @Success 201 {object} ImportSessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions/import [post]
func (h *SessionHandler) ImportSession(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "File is required", err, err.Error())
		return
	}
	if fileHeader.Size > maxImportSize {
		h.RespondWithError(c, http.StatusBadRequest, "File too large", nil,
			fmt.Sprintf("maximum size is %d bytes", maxImportSize))
		return
	}

	h.LogRequest(c, "Importing question set", "filename", fileHeader.Filename, "size", fileHeader.Size)

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to open file", err)
		return
	}
	defer file.Close()

	var result *services.ImportResult
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx":
		result, err = h.importService.ParseQSetFromExcel(c.Request.Context(), file)
	case ".csv":
		result, err = h.importService.ParseQSetFromCSV(c.Request.Context(), file)
	default:
		err = fmt.Errorf("%w: %s", services.ErrImportUnsupportedFormat, fileHeader.Filename)
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	}

	session, err := h.sessionService.Create(c.Request.Context(), &services.CreateSessionRequest{
		Title: title,
		QSet:  result.QSet,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ImportSessionResponse{Session: session, Import: result})
}

// ExportQSet renders a question set as a spreadsheet in the import layout
// @Summary Export question set
// @Tags qsets
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param qset body models.QSet true "Question set"
// @Router /qsets/export [post]
func (h *SessionHandler) ExportQSet(c *gin.Context) {
	var qset models.QSet
	if err := c.ShouldBindJSON(&qset); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	if err := h.validator.Validate(&qset); err != nil {
		h.handleServiceError(c, err)
		return
	}

	data, err := h.importService.ExportQSetToExcel(c.Request.Context(), qset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="qset.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetSession returns the whole exercise state
// @Summary Get exercise session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetCurrentQuestion returns the question the learner is on
// @Summary Get current question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.CurrentQuestionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/current [get]
func (h *SessionHandler) GetCurrentQuestion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	current, err := h.sessionService.Current(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, current)
}

// DispatchAction applies one action to the session's store
// @Summary Dispatch action
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param action body ActionRequest true "Action type and payload"
// @Success 200 {object} services.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/actions [post]
func (h *SessionHandler) DispatchAction(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	action, err := exercise.DecodeAction(req.Type, req.Payload)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid action payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Dispatching action", "kind", req.Type)

	session, err := h.sessionService.Dispatch(c.Request.Context(), id, action)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetResponse returns the answer string for a question
// @Summary Get answer
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param question_index query int false "Question index, defaults to the current question"
// @Success 200 {object} services.AnswerResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/response [get]
func (h *SessionHandler) GetResponse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	questionIndex, ok := ParseOptionalIntQuery(c, "question_index")
	if !ok {
		return
	}

	answer, err := h.sessionService.Response(c.Request.Context(), id, questionIndex)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// CloseSession unmounts the widget and discards its state
// @Summary Close exercise session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.ClosedSessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) CloseSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	closed, err := h.sessionService.Close(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Session closed", closed, "session_id", id)
}

func (h *SessionHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationError)
		return
	}

	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found", err, err.Error())
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, "Exercise is not initialized", err, err.Error())
	case services.IsInvalidAction(err):
		h.RespondWithError(c, http.StatusBadRequest, "Action rejected", err, err.Error())
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
