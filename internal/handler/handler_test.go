package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"merchantkit/internal/admin"
	"merchantkit/internal/branding"
	"merchantkit/internal/model"
)

const (
	testAppSecret  = "proxy-secret"
	testFunctionID = "fn-123"
)

func testHandler(mock *admin.Mock, opts Options) http.Handler {
	logger := zerolog.Nop()
	fonts := branding.NewService(branding.Options{
		API:          mock,
		Logger:       logger,
		PollInterval: time.Millisecond,
	})
	return New(mock, fonts, opts, logger).Routes()
}

func defaultOptions() Options {
	return Options{AppSecret: testAppSecret, RaffleFunctionID: testFunctionID}
}

// errorCode extracts the code from an error response body.
func errorCode(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error.Code
}

// fontForm builds a multipart body with one file part.
func fontForm(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("writing payload: %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	mux := testHandler(&admin.Mock{}, defaultOptions())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["status"] != "ok" {
		t.Errorf("status = %s, want ok", resp["status"])
	}
}

func TestHandleApplyFont(t *testing.T) {
	upload := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer upload.Close()

	mock := &admin.Mock{
		StagedUploadFunc: func(ctx context.Context, req model.UploadRequest) (*model.StagedTarget, error) {
			return &model.StagedTarget{
				URL:         upload.URL,
				ResourceURL: upload.URL + "/tmp/brand.woff2",
				Parameters:  []model.StagedParameter{{Name: "key", Value: "tmp/brand.woff2"}},
			}, nil
		},
		CreateFileFunc: func(ctx context.Context, resourceURL, filename string) (*model.GenericFile, error) {
			return &model.GenericFile{ID: "gid://shopify/GenericFile/1", Status: model.FileStatusReady}, nil
		},
		ActiveCheckoutProfileFunc: func(ctx context.Context) (*model.CheckoutProfile, error) {
			return &model.CheckoutProfile{ID: "gid://shopify/CheckoutProfile/1", Name: "Default"}, nil
		},
		UpsertFontBrandingFunc: func(ctx context.Context, profileID, fileID string) (*model.FontBinding, error) {
			return &model.FontBinding{}, nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	body, contentType := fontForm(t, "font", "brand.woff2", []byte("glyph data"))
	req := httptest.NewRequest("POST", "/api/branding/font", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result branding.Result
	json.NewDecoder(w.Body).Decode(&result)
	if !result.Success {
		t.Errorf("result = %+v, want success", result)
	}
	if result.Message != "Font successfully applied to checkout branding" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestHandleApplyFontPipelineFailure(t *testing.T) {
	// Pipeline failures keep the result shape but answer 422
	mux := testHandler(&admin.Mock{}, defaultOptions())

	body, contentType := fontForm(t, "font", "brand.ttf", []byte("glyph data"))
	req := httptest.NewRequest("POST", "/api/branding/font", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	var result branding.Result
	json.NewDecoder(w.Body).Decode(&result)
	if result.Success {
		t.Error("result.Success = true, want false")
	}
	if result.Message != "Invalid file type" {
		t.Errorf("Message = %q", result.Message)
	}
	if result.Error != "Only .woff and .woff2 files are allowed" {
		t.Errorf("Error = %q", result.Error)
	}
}

func TestHandleApplyFontMissingFile(t *testing.T) {
	mux := testHandler(&admin.Mock{}, defaultOptions())

	body, contentType := fontForm(t, "attachment", "brand.woff2", []byte("glyph data"))
	req := httptest.NewRequest("POST", "/api/branding/font", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if code := errorCode(w.Body.Bytes()); code != "VALIDATION_ERROR" {
		t.Errorf("Error code = %s, want VALIDATION_ERROR", code)
	}
}

func TestHandleApplyFontNotMultipart(t *testing.T) {
	mux := testHandler(&admin.Mock{}, defaultOptions())

	req := httptest.NewRequest("POST", "/api/branding/font", strings.NewReader(`{"font":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleGetProfile(t *testing.T) {
	mock := &admin.Mock{
		ActiveCheckoutProfileFunc: func(ctx context.Context) (*model.CheckoutProfile, error) {
			return &model.CheckoutProfile{ID: "gid://shopify/CheckoutProfile/1", Name: "Default"}, nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	req := httptest.NewRequest("GET", "/api/branding/profile", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var profile model.CheckoutProfile
	json.NewDecoder(w.Body).Decode(&profile)
	if profile.Name != "Default" {
		t.Errorf("Name = %s, want Default", profile.Name)
	}
}

func TestHandleGetProfileNotFound(t *testing.T) {
	// The zero mock reports no published profile
	mux := testHandler(&admin.Mock{}, defaultOptions())

	req := httptest.NewRequest("GET", "/api/branding/profile", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if code := errorCode(w.Body.Bytes()); code != "NOT_FOUND" {
		t.Errorf("Error code = %s, want NOT_FOUND", code)
	}
}

func TestHandleListFAQs(t *testing.T) {
	mock := &admin.Mock{
		ListFAQsFunc: func(ctx context.Context) ([]model.FAQ, error) {
			return []model.FAQ{
				{ID: "gid://shopify/Metaobject/1", Question: "Q1", Answer: "A1"},
				{ID: "gid://shopify/Metaobject/2", Question: "Q2", Answer: "A2"},
			}, nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	req := httptest.NewRequest("GET", "/api/faqs", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		FAQs []model.FAQ `json:"faqs"`
	}
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.FAQs) != 2 {
		t.Errorf("faqs = %d, want 2", len(resp.FAQs))
	}
	if resp.FAQs[0].Question != "Q1" {
		t.Errorf("faqs[0].Question = %s", resp.FAQs[0].Question)
	}
}

func TestHandleCreateFAQ(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"question":"Do you ship abroad?","answer":"Yes."}`, http.StatusCreated},
		{"missing answer", `{"question":"Do you ship abroad?"}`, http.StatusBadRequest},
		{"missing question", `{"answer":"Yes."}`, http.StatusBadRequest},
		{"invalid json", `{broken`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &admin.Mock{
				CreateFAQFunc: func(ctx context.Context, question, answer string) (*model.FAQ, error) {
					return &model.FAQ{ID: "gid://shopify/Metaobject/9", Question: question, Answer: answer}, nil
				},
			}
			mux := testHandler(mock, defaultOptions())

			req := httptest.NewRequest("POST", "/api/faqs", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d\nBody: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestHandleUpdateFAQ(t *testing.T) {
	var gotID string
	mock := &admin.Mock{
		UpdateFAQFunc: func(ctx context.Context, id, question, answer string) (*model.FAQ, error) {
			gotID = id
			return &model.FAQ{ID: id, Question: question, Answer: answer}, nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	body := `{"question":"Updated?","answer":"Yes."}`
	req := httptest.NewRequest("PUT", "/api/faqs/5", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusOK, w.Body.String())
	}
	// Bare numeric ids are expanded to the platform gid form
	if gotID != "gid://shopify/Metaobject/5" {
		t.Errorf("id = %s, want gid://shopify/Metaobject/5", gotID)
	}
}

func TestHandleDeleteFAQ(t *testing.T) {
	var gotID string
	mock := &admin.Mock{
		DeleteFAQFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	req := httptest.NewRequest("DELETE", "/api/faqs/5", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if gotID != "gid://shopify/Metaobject/5" {
		t.Errorf("id = %s", gotID)
	}
}

func TestHandleSyncFAQs(t *testing.T) {
	var created, updated, deleted []string

	mock := &admin.Mock{
		ListFAQsFunc: func(ctx context.Context) ([]model.FAQ, error) {
			return []model.FAQ{
				{ID: "gid://shopify/Metaobject/1", Question: "Old?", Answer: "Gone."},
				{ID: "gid://shopify/Metaobject/2", Question: "Keep?", Answer: "Old text."},
			}, nil
		},
		CreateFAQFunc: func(ctx context.Context, question, answer string) (*model.FAQ, error) {
			created = append(created, question)
			return &model.FAQ{ID: "gid://shopify/Metaobject/3", Question: question, Answer: answer}, nil
		},
		UpdateFAQFunc: func(ctx context.Context, id, question, answer string) (*model.FAQ, error) {
			updated = append(updated, id)
			return &model.FAQ{ID: id, Question: question, Answer: answer}, nil
		},
		DeleteFAQFunc: func(ctx context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	body := `{"faqs":[
		{"id":"gid://shopify/Metaobject/2","question":"Keep?","answer":"New text."},
		{"question":"Brand new?","answer":"Created."}
	]}`
	req := httptest.NewRequest("PUT", "/api/faqs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var counts map[string]int
	json.NewDecoder(w.Body).Decode(&counts)
	if counts["created"] != 1 || counts["updated"] != 1 || counts["deleted"] != 1 {
		t.Errorf("counts = %v, want created/updated/deleted = 1/1/1", counts)
	}

	if len(deleted) != 1 || deleted[0] != "gid://shopify/Metaobject/1" {
		t.Errorf("deleted = %v", deleted)
	}
	if len(updated) != 1 || updated[0] != "gid://shopify/Metaobject/2" {
		t.Errorf("updated = %v", updated)
	}
	if len(created) != 1 || created[0] != "Brand new?" {
		t.Errorf("created = %v", created)
	}
}

func TestHandleSyncFAQsRejectsBlankEntries(t *testing.T) {
	mux := testHandler(&admin.Mock{}, defaultOptions())

	body := `{"faqs":[{"question":"","answer":"orphan"}]}`
	req := httptest.NewRequest("PUT", "/api/faqs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if code := errorCode(w.Body.Bytes()); code != "VALIDATION_ERROR" {
		t.Errorf("Error code = %s, want VALIDATION_ERROR", code)
	}
}

func TestHandleCreatePixel(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"accountID":"GA-42"}`, http.StatusCreated},
		{"missing account", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &admin.Mock{
				CreateWebPixelFunc: func(ctx context.Context, settings model.PixelSettings) (*model.WebPixel, error) {
					return &model.WebPixel{ID: "gid://shopify/WebPixel/3", Settings: settings}, nil
				},
			}
			mux := testHandler(mock, defaultOptions())

			req := httptest.NewRequest("POST", "/api/pixel", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d\nBody: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestHandleGetPixelNotRegistered(t *testing.T) {
	mux := testHandler(&admin.Mock{}, defaultOptions())

	req := httptest.NewRequest("GET", "/api/pixel", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleUpdatePixel(t *testing.T) {
	var gotID string
	mock := &admin.Mock{
		UpdateWebPixelFunc: func(ctx context.Context, id string, settings model.PixelSettings) (*model.WebPixel, error) {
			gotID = id
			return &model.WebPixel{ID: id, Settings: settings}, nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	req := httptest.NewRequest("PUT", "/api/pixel/3", strings.NewReader(`{"accountID":"GA-43"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if gotID != "gid://shopify/WebPixel/3" {
		t.Errorf("id = %s, want gid://shopify/WebPixel/3", gotID)
	}
}

func TestHandleCreateRaffle(t *testing.T) {
	var savedConfig *model.RaffleConfig
	mock := &admin.Mock{
		CreateRaffleDiscountFunc: func(ctx context.Context, functionID string, cfg model.RaffleConfig) (*model.RaffleDiscount, error) {
			if functionID != testFunctionID {
				t.Errorf("functionID = %s, want %s", functionID, testFunctionID)
			}
			return &model.RaffleDiscount{ID: "gid://shopify/DiscountAutomaticApp/7", Title: cfg.Title}, nil
		},
		SaveRaffleConfigFunc: func(ctx context.Context, cfg model.RaffleConfig) error {
			savedConfig = &cfg
			return nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	body := `{"title":"Summer raffle","chances":[{"percentage":10,"weight":90},{"percentage":50,"weight":10}]}`
	req := httptest.NewRequest("POST", "/api/raffle", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if savedConfig == nil {
		t.Fatal("prize table was not persisted")
	}
	if savedConfig.Title != "Summer raffle" || len(savedConfig.Chances) != 2 {
		t.Errorf("saved config = %+v", savedConfig)
	}
}

func TestHandleCreateRaffleInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no title", `{"chances":[{"percentage":10,"weight":1}]}`},
		{"no chances", `{"title":"Raffle"}`},
		{"zero weight", `{"title":"Raffle","chances":[{"percentage":10,"weight":0}]}`},
		{"percentage out of range", `{"title":"Raffle","chances":[{"percentage":150,"weight":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := testHandler(&admin.Mock{}, defaultOptions())

			req := httptest.NewRequest("POST", "/api/raffle", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestHandleCreateRaffleNoFunctionConfigured(t *testing.T) {
	mux := testHandler(&admin.Mock{}, Options{AppSecret: testAppSecret})

	body := `{"title":"Summer raffle","chances":[{"percentage":10,"weight":1}]}`
	req := httptest.NewRequest("POST", "/api/raffle", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleGetRaffle(t *testing.T) {
	mock := &admin.Mock{
		RaffleConfigFunc: func(ctx context.Context) (*model.RaffleConfig, error) {
			return &model.RaffleConfig{
				Title:   "Summer raffle",
				Chances: []model.RaffleChance{{Percentage: 10, Weight: 1}},
			}, nil
		},
	}
	mux := testHandler(mock, defaultOptions())

	req := httptest.NewRequest("GET", "/api/raffle", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var cfg model.RaffleConfig
	if err := json.NewDecoder(w.Body).Decode(&cfg); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if cfg.Title != "Summer raffle" {
		t.Errorf("Title = %s, want Summer raffle", cfg.Title)
	}
}

func TestHandleGetRaffleNotConfigured(t *testing.T) {
	mock := &admin.Mock{
		RaffleConfigFunc: func(ctx context.Context) (*model.RaffleConfig, error) {
			return nil, model.NewNotFoundError("raffle configuration")
		},
	}
	mux := testHandler(mock, defaultOptions())

	req := httptest.NewRequest("GET", "/api/raffle", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if code := errorCode(w.Body.Bytes()); code != "NOT_FOUND" {
		t.Errorf("Code = %s, want NOT_FOUND", code)
	}
}

// signProxyQuery computes the app proxy signature over the query values.
func signProxyQuery(secret string, values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(strings.Join(values[k], ","))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sb.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestHandleRaffleDraw(t *testing.T) {
	mock := &admin.Mock{
		RaffleConfigFunc: func(ctx context.Context) (*model.RaffleConfig, error) {
			return &model.RaffleConfig{
				Title: "Summer raffle",
				Chances: []model.RaffleChance{
					{Percentage: 5, Weight: 70},
					{Percentage: 10, Weight: 25},
					{Percentage: 50, Weight: 5},
				},
			}, nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	values := url.Values{
		"shop":        {"demo.myshopify.com"},
		"path_prefix": {"/apps/raffle"},
		"timestamp":   {"1755800000"},
	}
	values.Set("signature", signProxyQuery(testAppSecret, values))

	req := httptest.NewRequest("GET", "/proxy/raffle/draw?"+values.Encode(), nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]int
	json.NewDecoder(w.Body).Decode(&resp)
	switch resp["percentage"] {
	case 5, 10, 50:
	default:
		t.Errorf("percentage = %d, want one of the configured tiers", resp["percentage"])
	}
}

func TestHandleRaffleDrawBadSignature(t *testing.T) {
	mux := testHandler(&admin.Mock{}, defaultOptions())

	tests := []struct {
		name  string
		query string
	}{
		{"missing signature", "shop=demo.myshopify.com"},
		{"wrong signature", "shop=demo.myshopify.com&signature=deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/proxy/raffle/draw?"+tt.query, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			if code := errorCode(w.Body.Bytes()); code != "UNAUTHORIZED" {
				t.Errorf("Error code = %s, want UNAUTHORIZED", code)
			}
		})
	}
}

func TestHandleCancelOrder(t *testing.T) {
	var gotOrderID, gotReason string
	mock := &admin.Mock{
		CancelOrderFunc: func(ctx context.Context, orderID, reason string) (string, error) {
			gotOrderID = orderID
			gotReason = reason
			return "gid://shopify/Job/77", nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	req := httptest.NewRequest("POST", "/api/orders/12345/cancel", strings.NewReader(`{"reason":"CUSTOMER"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusAccepted, w.Body.String())
	}

	if gotOrderID != "12345" {
		t.Errorf("orderID = %s, want 12345", gotOrderID)
	}
	if gotReason != model.CancelReasonCustomer {
		t.Errorf("reason = %s, want CUSTOMER", gotReason)
	}

	var resp map[string]string
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["jobId"] != "gid://shopify/Job/77" {
		t.Errorf("jobId = %s", resp["jobId"])
	}
}

func TestHandleCancelOrderDefaultReason(t *testing.T) {
	var gotReason string
	mock := &admin.Mock{
		CancelOrderFunc: func(ctx context.Context, orderID, reason string) (string, error) {
			gotReason = reason
			return "gid://shopify/Job/78", nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	// No body at all: reason defaults
	req := httptest.NewRequest("POST", "/api/orders/12345/cancel", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Status = %d, want %d\nBody: %s", w.Code, http.StatusAccepted, w.Body.String())
	}
	if gotReason != model.CancelReasonOther {
		t.Errorf("reason = %s, want OTHER", gotReason)
	}
}

func TestHandleCancelOrderUnknownReason(t *testing.T) {
	mux := testHandler(&admin.Mock{}, defaultOptions())

	req := httptest.NewRequest("POST", "/api/orders/12345/cancel", strings.NewReader(`{"reason":"BANANA"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateProduct(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"title":"Snowboard","vendor":"Hilltop"}`, http.StatusCreated},
		{"missing title", `{"vendor":"Hilltop"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &admin.Mock{
				CreateProductFunc: func(ctx context.Context, input model.ProductInput) (*model.Product, error) {
					return &model.Product{ID: "gid://shopify/Product/1", Title: input.Title, Status: "ACTIVE"}, nil
				},
			}
			mux := testHandler(mock, defaultOptions())

			req := httptest.NewRequest("POST", "/api/products", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d\nBody: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

// signWebhookBody computes the webhook HMAC header value for a body.
func signWebhookBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestHandleOrderCreated(t *testing.T) {
	var gotOrderID string
	var gotVerified bool
	mock := &admin.Mock{
		SetAgeVerifiedFunc: func(ctx context.Context, orderID string, verified bool) error {
			gotOrderID = orderID
			gotVerified = verified
			return nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	body := []byte(`{"id":999,"note_attributes":[{"name":"age_verified","value":"true"}]}`)
	req := httptest.NewRequest("POST", "/webhooks/orders-create", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", signWebhookBody(testAppSecret, body))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotOrderID != "999" {
		t.Errorf("orderID = %s, want 999", gotOrderID)
	}
	if !gotVerified {
		t.Error("verified = false, want true")
	}
}

func TestHandleOrderCreatedNotVerified(t *testing.T) {
	called := false
	mock := &admin.Mock{
		SetAgeVerifiedFunc: func(ctx context.Context, orderID string, verified bool) error {
			called = true
			return nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	body := []byte(`{"id":999,"note_attributes":[{"name":"gift_note","value":"Happy birthday"}]}`)
	req := httptest.NewRequest("POST", "/webhooks/orders-create", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", signWebhookBody(testAppSecret, body))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if called {
		t.Error("SetAgeVerified called for an unverified order")
	}
}

func TestHandleOrderCreatedBadSignature(t *testing.T) {
	mux := testHandler(&admin.Mock{}, defaultOptions())

	body := []byte(`{"id":999}`)
	req := httptest.NewRequest("POST", "/webhooks/orders-create", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", signWebhookBody("wrong-secret", body))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestHandleOrderCreatedMalformedBody(t *testing.T) {
	// A signed but unparseable delivery is acknowledged, not retried forever
	called := false
	mock := &admin.Mock{
		SetAgeVerifiedFunc: func(ctx context.Context, orderID string, verified bool) error {
			called = true
			return nil
		},
	}

	mux := testHandler(mock, defaultOptions())

	body := []byte(`{not json`)
	req := httptest.NewRequest("POST", "/webhooks/orders-create", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", signWebhookBody(testAppSecret, body))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}
	if called {
		t.Error("SetAgeVerified called for a malformed delivery")
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name       string
		mockErr    error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			mockErr:    model.NewNotFoundError("checkout profile"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "validation error",
			mockErr:    model.NewValidationError("field", "invalid"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "unauthorized",
			mockErr:    model.NewUnauthorizedError("invalid credentials"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "upstream error",
			mockErr:    model.NewUpstreamError("Shopify", nil),
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_ERROR",
		},
		{
			name:       "user errors",
			mockErr:    model.NewUserErrorsError("checkoutBrandingUpsert", []string{"rejected"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "USER_ERRORS",
		},
		{
			name:       "rate limit",
			mockErr:    model.NewRateLimitError("Shopify"),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "RATE_LIMITED",
		},
		{
			name:       "unwrapped error",
			mockErr:    errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &admin.Mock{
				ActiveCheckoutProfileFunc: func(ctx context.Context) (*model.CheckoutProfile, error) {
					return nil, tt.mockErr
				},
			}

			mux := testHandler(mock, defaultOptions())

			req := httptest.NewRequest("GET", "/api/branding/profile", nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
			if code := errorCode(w.Body.Bytes()); code != tt.wantCode {
				t.Errorf("Code = %s, want %s\nBody: %s", code, tt.wantCode, w.Body.String())
			}
		})
	}
}
