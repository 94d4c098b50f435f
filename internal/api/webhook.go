package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"vendas/internal/metrics"
	"vendas/internal/model"
	"vendas/internal/storage"
	"vendas/internal/utils"
)

const (
	msgSuccess = "Venda registrada com sucesso"
	msgNoMatch = "Não foi possível extrair os dados"
	msgInvalid = "Requisição inválida: envie um arquivo de áudio ou uma mensagem do tipo audio com url"
	msgFailure = "Erro ao processar o áudio"
)

var (
	errInvalidPayload = errors.New("invalid webhook payload")
	errNotAudio       = errors.New("message is not an audio reference")
)

// Errors that map to 400. Anything else is a 500.
var clientErrors = []error{
	errInvalidPayload,
	errNotAudio,
	storage.ErrUnsupportedAudio,
	storage.ErrTooLarge,
}

// Multipart field names accepted for direct uploads, in lookup order.
var uploadFields = []string{"audio", "audio_file", "file"}

// WebhookPayload is the JSON body of a reference-fetch request.
type WebhookPayload struct {
	Message WebhookMessage `json:"message"`
}

type WebhookMessage struct {
	Type string `json:"type"`
	URL  string `json:"url" binding:"omitempty,url"`
}

// receiveAudio handles POST /webhook/audio: materialize the audio, transcribe
// it, extract a sale and append it to the ledger. The temporary audio file is
// removed on every path once it exists.
func (h *Handler) receiveAudio(c *gin.Context) {
	log := h.logger.With(zap.String("request_id", c.GetString(requestIDKey)))
	ctx := c.Request.Context()

	start := time.Now()
	audio, err := h.materialize(c)
	if err != nil {
		if isClientError(err) {
			log.Warn("rejected webhook request", zap.Error(err))
			h.metrics.ObserveOutcome(metrics.OutcomeRejected)
			utils.Text(c, http.StatusBadRequest, msgInvalid)
			return
		}
		h.metrics.ObserveStage(metrics.StageIngress, time.Since(start), err)
		h.fail(c, log, metrics.StageIngress, err)
		return
	}
	defer h.release(audio, log)
	h.metrics.ObserveStage(metrics.StageIngress, time.Since(start), nil)

	start = time.Now()
	result, err := h.stt.Transcribe(ctx, audio.Path)
	h.metrics.ObserveStage(metrics.StageTranscribe, time.Since(start), err)
	if err != nil {
		h.fail(c, log, metrics.StageTranscribe, err)
		return
	}
	log.Info("audio transcribed", zap.String("provider", result.Provider), zap.String("transcript", result.Transcript))

	fields, ok := h.extractor.Extract(result.Transcript)
	if !ok {
		log.Info("no sale found in transcript", zap.String("locale", h.extractor.Locale()))
		h.metrics.ObserveOutcome(metrics.OutcomeNoMatch)
		utils.Text(c, http.StatusOK, msgNoMatch)
		return
	}

	rec := model.SaleRecord{
		Buyer:     fields.Buyer,
		Product:   fields.Product,
		Price:     fields.Price,
		Timestamp: h.now(),
	}

	start = time.Now()
	err = h.ledger.Append(ctx, rec)
	h.metrics.ObserveStage(metrics.StageAppend, time.Since(start), err)
	if err != nil {
		log.Error("sale extracted but not recorded", zap.Strings("row", rec.Row()))
		h.fail(c, log, metrics.StageAppend, err)
		return
	}

	log.Info("sale recorded", zap.String("ledger", h.ledger.Name()), zap.Strings("row", rec.Row()))
	h.metrics.ObserveOutcome(metrics.OutcomeSuccess)
	utils.Text(c, http.StatusOK, msgSuccess)
}

// materialize turns the request into exactly one local audio file. The
// Content-Type header selects between direct upload and reference fetch.
func (h *Handler) materialize(c *gin.Context) (*storage.TempAudio, error) {
	switch c.ContentType() {
	case binding.MIMEJSON:
		var payload WebhookPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		msg := payload.Message
		if msg.Type != "audio" || msg.URL == "" {
			return nil, fmt.Errorf("%w: type %q, url present %t", errNotAudio, msg.Type, msg.URL != "")
		}
		return h.store.Download(c.Request.Context(), msg.URL)

	case binding.MIMEMultipartPOSTForm:
		file, err := formFile(c)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		return h.store.SaveUpload(file)

	default:
		return nil, fmt.Errorf("%w: unsupported content type %q", errInvalidPayload, c.ContentType())
	}
}

func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	for _, field := range uploadFields {
		file, err := c.FormFile(field)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("audio is required (fields: %v)", uploadFields)
}

func (h *Handler) fail(c *gin.Context, log *zap.Logger, stage string, err error) {
	log.Error("webhook processing failed", zap.String("stage", stage), zap.Error(err))
	h.metrics.ObserveOutcome(metrics.OutcomeFailed)
	utils.Text(c, http.StatusInternalServerError, msgFailure)
}

// release logs removal errors and otherwise ignores them.
func (h *Handler) release(audio *storage.TempAudio, log *zap.Logger) {
	if err := audio.Remove(); err != nil {
		log.Warn("failed to remove temporary audio", zap.String("path", audio.Path), zap.Error(err))
	}
}

func isClientError(err error) bool {
	return lo.SomeBy(clientErrors, func(target error) bool {
		return errors.Is(err, target)
	})
}
