package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dreschagin/model-asset-server/internal/application/dto"
	"github.com/dreschagin/model-asset-server/internal/application/usecase"
	"github.com/dreschagin/model-asset-server/internal/interfaces/http/middleware"
	"github.com/dreschagin/model-asset-server/pkg/logger"
)

const (
	FolderErrorMessage = "Folder not found or error reading directory"
	FileErrorMessage   = "File not found or error reading file"

	modelContentType  = "model/gltf-binary"
	modelCacheControl = "public, max-age=86400"
)

// ModelHandler отдает листинги папок и бинарные .glb модели.
// Любая ошибка чтения превращается в 404 с фиксированным текстом;
// детали ошибки пишутся только в лог.
type ModelHandler struct {
	listModelsUC *usecase.ListModelsUseCase
	getModelUC   *usecase.GetModelUseCase
	logger       *logger.Logger
}

// NewModelHandler создает новый handler
func NewModelHandler(
	listModelsUC *usecase.ListModelsUseCase,
	getModelUC *usecase.GetModelUseCase,
	logger *logger.Logger,
) *ModelHandler {
	return &ModelHandler{
		listModelsUC: listModelsUC,
		getModelUC:   getModelUC,
		logger:       logger,
	}
}

// ListModels обрабатывает GET /models/{folderName}
func (h *ModelHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	folderName := r.PathValue("folderName")

	models, err := h.listModelsUC.Execute(r.Context(), folderName)
	if err != nil {
		h.logger.Error("Error listing models in folder", err,
			"folder", folderName,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		middleware.WriteText(w, http.StatusNotFound, FolderErrorMessage)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, models)
}

// GetModel обрабатывает GET /model/{folderName}/{modelName}
func (h *ModelHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	cmd := usecase.GetModelCommand{
		FolderName: r.PathValue("folderName"),
		ModelName:  r.PathValue("modelName"),
	}

	model, err := h.getModelUC.Execute(r.Context(), cmd)
	if err != nil {
		h.logger.Error("Error serving model", err,
			"folder", cmd.FolderName,
			"model", cmd.ModelName,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		middleware.WriteText(w, http.StatusNotFound, FileErrorMessage)
		return
	}

	h.writeModel(w, r, model)
}

// GetDefaultModel обрабатывает GET /model
func (h *ModelHandler) GetDefaultModel(w http.ResponseWriter, r *http.Request) {
	model, err := h.getModelUC.ExecuteDefault(r.Context())
	if err != nil {
		h.logger.Error("Error serving .glb file", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		middleware.WriteText(w, http.StatusNotFound, FileErrorMessage)
		return
	}

	h.writeModel(w, r, model)
}

func (h *ModelHandler) writeModel(w http.ResponseWriter, r *http.Request, model *dto.ModelContentDTO) {
	header := w.Header()
	header.Set("Content-Type", modelContentType)
	header.Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, model.FileName))
	header.Set("Content-Length", strconv.FormatInt(model.Size, 10))
	header.Set("Cache-Control", modelCacheControl)
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(model.Data); err != nil {
		h.logger.Warn("Failed to write model body", "file", model.FileName, "error", err.Error())
	}
}
