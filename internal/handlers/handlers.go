// Package handlers exposes the classification service over HTTP.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdobak/go-xerrors"

	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/classify"
	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/imaging"
	"github.com/pyrzerkm/Smart-Garbage-Segregation-main/internal/servo"
)

// Predictor is the inference dependency of the handler. Implemented by
// model.Classifier; stubbed in tests.
type Predictor interface {
	Predict(input []float32) (classify.Label, float64, error)
	ImageSize() int
}

type Handler struct {
	predictor Predictor
	servo     *servo.Controller
}

func NewHandler(predictor Predictor, controller *servo.Controller) *Handler {
	return &Handler{
		predictor: predictor,
		servo:     controller,
	}
}

func (h *Handler) SetRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/predict", h.Predict)
}

func (h *Handler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{
		"status":       "healthy",
		"model_loaded": h.predictor != nil,
	})
}

// Predict classifies the uploaded image and returns the routing decision.
func (h *Handler) Predict(ctx echo.Context) error {
	if h.predictor == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Model not loaded")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			"No image file provided. Use 'file' as the form field name")
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("predict: failed to open upload",
			slog.String("filename", fileHeader.Filename), slog.Any("error", xerrors.New(err)))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer file.Close()

	img, format, err := imaging.Decode(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Invalid image format. Supported: JPEG, PNG, GIF, WEBP, BMP, TIFF")
	}

	slog.Info("predict: image received",
		slog.String("filename", fileHeader.Filename),
		slog.String("format", format),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()))

	inputData := imaging.Preprocess(img, h.predictor.ImageSize())

	label, confidence, err := h.predictor.Predict(inputData)
	if err != nil {
		slog.Error("predict: inference failed", slog.Any("error", xerrors.New(err)))
		return echo.NewHTTPError(http.StatusInternalServerError, "Prediction failed")
	}

	decision, err := classify.Decide(label, confidence)
	if err != nil {
		slog.Error("predict: decision mapping failed", slog.Any("error", xerrors.New(err)))
		return echo.NewHTTPError(http.StatusInternalServerError, "Prediction failed")
	}

	if h.servo != nil {
		h.servo.Move(decision.Bin, decision.ServoAngle)
	}

	slog.Info("predict: decision",
		slog.String("class", decision.PredictedClass),
		slog.Float64("confidence", decision.Confidence),
		slog.String("bin", string(decision.Bin)),
		slog.Int("servo_angle", int(decision.ServoAngle)))

	return ctx.JSON(http.StatusOK, decision)
}

// DetailHTTPErrorHandler renders every error as {"detail": reason}, the
// body shape the browser client expects.
func DetailHTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			detail = msg
		}
	}

	if writeErr := ctx.JSON(code, map[string]string{"detail": detail}); writeErr != nil {
		slog.Error("failed to write error response", slog.Any("error", xerrors.New(writeErr)))
	}
}
