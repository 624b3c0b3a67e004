package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	githubcontroller "github.com/m-mizutani/relprune/pkg/controller/github"
	controller "github.com/m-mizutani/relprune/pkg/controller/http"
	"github.com/m-mizutani/relprune/pkg/domain/model"
	"github.com/m-mizutani/relprune/pkg/usecase"
)

// recordingProcessor records deliveries passed to it
type recordingProcessor struct {
	deliveries []string
	err        error
}

func (p *recordingProcessor) ProcessEvent(ctx context.Context, deliveryID, eventType string, body []byte) error {
	p.deliveries = append(p.deliveries, deliveryID+":"+eventType)
	return p.err
}

// generateSignature generates HMAC-SHA256 signature for testing
func generateSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newRequest(eventType string, payload []byte, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/hooks/github/app", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "test-delivery")
	req.Header.Set("X-Hub-Signature-256", signature)
	return req
}

func TestWebhookHandler_SignatureVerification(t *testing.T) {
	secret := "test-secret"
	payload := []byte(`{"action":"published"}`)

	tests := []struct {
		name           string
		signature      string
		wantStatusCode int
		wantDelivered  bool
	}{
		{
			name:           "Valid signature",
			signature:      generateSignature(secret, payload),
			wantStatusCode: http.StatusOK,
			wantDelivered:  true,
		},
		{
			name:           "Valid signature without prefix",
			signature:      generateSignature(secret, payload)[len("sha256="):],
			wantStatusCode: http.StatusOK,
			wantDelivered:  true,
		},
		{
			name:           "Invalid signature",
			signature:      "sha256=invalid",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Signature with wrong secret",
			signature:      generateSignature("other-secret", payload),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Missing signature",
			signature:      "",
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor := &recordingProcessor{}
			handler := controller.NewWebhookHandler(secret, processor)

			w := httptest.NewRecorder()
			handler.Handle(w, newRequest("release", payload, tt.signature))

			gt.Value(t, w.Code).Equal(tt.wantStatusCode)
			if tt.wantDelivered {
				gt.Value(t, processor.deliveries).Equal([]string{"test-delivery:release"})
			} else {
				gt.A(t, processor.deliveries).Length(0)
			}
		})
	}
}

func TestWebhookHandler_ProcessorError(t *testing.T) {
	secret := "test-secret"
	payload := []byte(`{}`)
	handler := controller.NewWebhookHandler(secret, &recordingProcessor{err: errors.New("broken")})

	w := httptest.NewRecorder()
	handler.Handle(w, newRequest("release", payload, generateSignature(secret, payload)))

	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	gt.String(t, w.Body.String()).Contains("broken")
}

// MockPruneUseCase records Prune calls made through the full server stack
type MockPruneUseCase struct {
	targets []model.Target
}

func (m *MockPruneUseCase) Prune(ctx context.Context, target model.Target, opts model.PruneOptions) (*model.PruneResult, error) {
	m.targets = append(m.targets, target)
	return &model.PruneResult{Target: target}, nil
}

func TestServer_ReleasePublishedTriggersPrune(t *testing.T) {
	secret := "test-secret"
	pruneUC := &MockPruneUseCase{}
	webhookUC := usecase.NewWebhook(pruneUC, model.PruneOptions{DeleteTags: true},
		usecase.WithDispatcher(func(ctx context.Context, task string, handler func(ctx context.Context) error) {
			_ = handler(ctx)
		}),
	)

	server, err := controller.NewServer(context.Background(),
		githubcontroller.NewEventProcessor(webhookUC),
		controller.WithWebhookSecret(secret),
	)
	gt.NoError(t, err)

	tests := []struct {
		name      string
		eventType string
		payload   string
		wantCode  int
		wantPrune bool
	}{
		{
			name:      "Release published",
			eventType: "release",
			payload:   `{"action":"published","release":{"id":1,"tag_name":"v2.0.0-rc.1","prerelease":true},"repository":{"name":"repo","full_name":"test/repo","owner":{"login":"test"}},"sender":{"login":"testuser"}}`,
			wantCode:  http.StatusOK,
			wantPrune: true,
		},
		{
			name:      "Release created",
			eventType: "release",
			payload:   `{"action":"created","release":{"id":1,"tag_name":"v2.0.0-rc.1"},"repository":{"name":"repo","owner":{"login":"test"}}}`,
			wantCode:  http.StatusOK,
		},
		{
			name:      "Ping",
			eventType: "ping",
			payload:   `{"zen":"Design for failure.","hook_id":1}`,
			wantCode:  http.StatusOK,
		},
		{
			name:      "Broken JSON",
			eventType: "release",
			payload:   `{"action":`,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(pruneUC.targets)
			payload := []byte(tt.payload)

			w := httptest.NewRecorder()
			server.Handler.ServeHTTP(w, newRequest(tt.eventType, payload, generateSignature(secret, payload)))

			gt.Value(t, w.Code).Equal(tt.wantCode)
			if tt.wantPrune {
				gt.Value(t, len(pruneUC.targets)).Equal(before + 1)
				gt.Value(t, pruneUC.targets[before]).Equal(model.Target{Owner: "test", Repo: "repo"})
			} else {
				gt.Value(t, len(pruneUC.targets)).Equal(before)
			}
		})
	}
}
