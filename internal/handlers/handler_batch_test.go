package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/core/eftfile"
	portssvc "github.com/SscSPs/eft_batch_service/internal/core/ports/services"
	"github.com/SscSPs/eft_batch_service/internal/dto"
	"github.com/SscSPs/eft_batch_service/internal/handlers"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
	"github.com/SscSPs/eft_batch_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BatchService ---
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) GetBatch(ctx context.Context, actor domain.Actor, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, actor, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) ListBatches(ctx context.Context, actor domain.Actor, params dto.ListBatchesParams) (*dto.ListBatchesResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListBatchesResponse), args.Error(1)
}
func (m *MockBatchService) ListAuditTrail(ctx context.Context, actor domain.Actor, batchID string) ([]domain.AuditEvent, error) {
	args := m.Called(ctx, actor, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEvent), args.Error(1)
}
func (m *MockBatchService) CreateBatch(ctx context.Context, actor domain.Actor, req dto.CreateBatchRequest) (*domain.Batch, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) UpdateBatch(ctx context.Context, actor domain.Actor, batchID string, req dto.UpdateBatchRequest, expectedVersion *int64) (*domain.Batch, error) {
	args := m.Called(ctx, actor, batchID, req, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) AddItem(ctx context.Context, actor domain.Actor, batchID string, req dto.AddLineItemRequest, expectedVersion *int64) (*domain.Batch, *domain.LineItem, error) {
	args := m.Called(ctx, actor, batchID, req, expectedVersion)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Batch), args.Get(1).(*domain.LineItem), args.Error(2)
}
func (m *MockBatchService) RemoveItem(ctx context.Context, actor domain.Actor, batchID, lineItemID string, expectedVersion *int64) (*domain.Batch, error) {
	args := m.Called(ctx, actor, batchID, lineItemID, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) Submit(ctx context.Context, actor domain.Actor, batchID string, expectedVersion *int64) (*domain.Batch, error) {
	args := m.Called(ctx, actor, batchID, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) DeleteBatch(ctx context.Context, actor domain.Actor, batchID string, expectedVersion *int64) error {
	args := m.Called(ctx, actor, batchID, expectedVersion)
	return args.Error(0)
}
func (m *MockBatchService) Approve(ctx context.Context, actor domain.Actor, batchID, remarks string, expectedVersion *int64) (*domain.Batch, error) {
	args := m.Called(ctx, actor, batchID, remarks, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) Reject(ctx context.Context, actor domain.Actor, batchID, reason string, expectedVersion *int64) (*domain.Batch, error) {
	args := m.Called(ctx, actor, batchID, reason, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) MarkExported(ctx context.Context, actor domain.Actor, batchID string, file portssvc.GeneratedFile, expectedVersion int64) (*domain.Batch, error) {
	args := m.Called(ctx, actor, batchID, file, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BatchSvcFacade = (*MockBatchService)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportBatch(ctx context.Context, actor domain.Actor, batchID string, format eftfile.Format) (*dto.ExportedFile, error) {
	args := m.Called(ctx, actor, batchID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExportedFile), args.Error(1)
}
func (m *MockExportService) ValidateFile(ctx context.Context, content string) (*eftfile.Summary, error) {
	args := m.Called(ctx, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eftfile.Summary), args.Error(1)
}
func (m *MockExportService) ExportBatchSummary(ctx context.Context, actor domain.Actor, format portssvc.SummaryFormat) (*dto.ExportedFile, error) {
	args := m.Called(ctx, actor, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExportedFile), args.Error(1)
}

var _ portssvc.ExportSvc = (*MockExportService)(nil)

// --- Mock MasterDataService ---
type MockMasterDataService struct {
	mock.Mock
}

func (m *MockMasterDataService) GetSchemeDetails(ctx context.Context, schemeID string) (*domain.SchemeDetails, error) {
	args := m.Called(ctx, schemeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SchemeDetails), args.Error(1)
}
func (m *MockMasterDataService) GetSupplierDetails(ctx context.Context, supplierID string) (*domain.SupplierDetails, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierDetails), args.Error(1)
}
func (m *MockMasterDataService) GetDebitAccount(ctx context.Context, debitAccountID string) (*domain.DebitAccount, error) {
	args := m.Called(ctx, debitAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitAccount), args.Error(1)
}

var _ portssvc.MasterDataSvc = (*MockMasterDataService)(nil)

// --- Test Suite ---
type BatchHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockBatch      *MockBatchService
	mockExport     *MockExportService
	mockMasterData *MockMasterDataService
	jwtSecret      string
}

const testIssuer = "eft-test"

func (suite *BatchHandlerTestSuite) generateTestToken(userID string, roles ...string) string {
	claims := middleware.Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BatchHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockBatch = new(MockBatchService)
	suite.mockExport = new(MockExportService)
	suite.mockMasterData = new(MockMasterDataService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, JWTIssuer: testIssuer, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Batch:      suite.mockBatch,
		Export:     suite.mockExport,
		MasterData: suite.mockMasterData,
	})
}

func (suite *BatchHandlerTestSuite) TearDownTest() {
	suite.mockBatch.AssertExpectations(suite.T())
	suite.mockExport.AssertExpectations(suite.T())
	suite.mockMasterData.AssertExpectations(suite.T())
}

func (suite *BatchHandlerTestSuite) do(method, path, userID string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, "accounts_personnel"))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func actorNamed(userID string) any {
	return mock.MatchedBy(func(a domain.Actor) bool {
		return a.UserID == userID && len(a.Roles) == 1 && a.Roles[0] == domain.RoleAccountsPersonnel
	})
}

func versionPtr(v int64) *int64 { return &v }

func sampleBatch(id string, status domain.BatchStatus, version int64) *domain.Batch {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	return &domain.Batch{
		BatchID:        id,
		BatchReference: "CRWB-20261018-093000-ABC123",
		BatchName:      "October salaries",
		FileReference:  "CRWB-18.10.2026",
		CurrencyCode:   "MWK",
		TotalAmount:    decimal.RequireFromString("250.50"),
		RecordCount:    1,
		Status:         status,
		Version:        version,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: "alice", LastUpdatedAt: now, LastUpdatedBy: "alice"},
	}
}

func decodeBody(suite *BatchHandlerTestSuite, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Test Cases ---

func (suite *BatchHandlerTestSuite) TestHealthIsPublic() {
	w := suite.do(http.MethodGet, "/health", "", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *BatchHandlerTestSuite) TestMissingTokenIsUnauthorized() {
	w := suite.do(http.MethodGet, "/api/v1/batches", "", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *BatchHandlerTestSuite) TestCreateBatch_Success() {
	req := dto.CreateBatchRequest{BatchName: "October salaries"}
	suite.mockBatch.On("CreateBatch", mock.Anything, actorNamed("alice"), req).
		Return(sampleBatch("b1", domain.Draft, 1), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches", "alice", req, nil)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal(`"1"`, w.Header().Get("ETag"))
	body := decodeBody(suite, w)
	suite.Equal("b1", body["batchID"])
	suite.Equal("250.5", body["totalAmount"])
}

func (suite *BatchHandlerTestSuite) TestCreateBatch_BindingFailure() {
	w := suite.do(http.MethodPost, "/api/v1/batches", "alice", map[string]any{"currencyCode": "MW"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := decodeBody(suite, w)
	details := body["details"].(map[string]any)
	suite.Equal("required", details["BatchName"])
	suite.Equal("len", details["CurrencyCode"])
}

func (suite *BatchHandlerTestSuite) TestCreateBatch_ForbiddenMapsTo403() {
	req := dto.CreateBatchRequest{BatchName: "x"}
	suite.mockBatch.On("CreateBatch", mock.Anything, mock.Anything, req).
		Return(nil, fmt.Errorf("%w: missing %s", apperrors.ErrForbidden, domain.PermCreateBatch)).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches", "alice", req, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *BatchHandlerTestSuite) TestGetBatch_NotFound() {
	suite.mockBatch.On("GetBatch", mock.Anything, actorNamed("carol"), "b1").
		Return(nil, fmt.Errorf("%w: batch b1", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/batches/b1", "carol", nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *BatchHandlerTestSuite) TestListBatches_PassesQuery() {
	params := dto.ListBatchesParams{Scope: "review", Status: "PENDING", Limit: 5}
	suite.mockBatch.On("ListBatches", mock.Anything, actorNamed("bob"), params).
		Return(&dto.ListBatchesResponse{Batches: []dto.BatchResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/batches?scope=review&status=PENDING&limit=5", "bob", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *BatchHandlerTestSuite) TestListBatches_RejectsUnknownScope() {
	w := suite.do(http.MethodGet, "/api/v1/batches?scope=everything", "bob", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *BatchHandlerTestSuite) TestAddItem_ForwardsIfMatch() {
	req := dto.AddLineItemRequest{
		Amount:         decimal.RequireFromString("250.50"),
		DebitAccountID: "d1",
		PayeeID:        "p1",
		SchemeID:       "s1",
	}
	b := sampleBatch("b1", domain.Draft, 4)
	item := &domain.LineItem{LineItemID: "i1", BatchID: "b1", SequenceNumber: "0001", Amount: req.Amount}
	suite.mockBatch.On("AddItem", mock.Anything, actorNamed("alice"), "b1", mock.Anything, versionPtr(3)).
		Return(b, item, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches/b1/items", "alice", req, map[string]string{"If-Match": `"3"`})

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal(`"4"`, w.Header().Get("ETag"))
	body := decodeBody(suite, w)
	suite.Equal("250.5", body["batchTotal"])
	suite.EqualValues(1, body["recordCount"])
	suite.Equal("0001", body["item"].(map[string]any)["sequenceNumber"])
}

func (suite *BatchHandlerTestSuite) TestAddItem_ValidationErrorNamesField() {
	suite.mockBatch.On("AddItem", mock.Anything, mock.Anything, "b1", mock.Anything, (*int64)(nil)).
		Return(nil, nil, apperrors.NewValidationError("Zone", "not found")).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches/b1/items", "alice", dto.AddLineItemRequest{SchemeID: "s1"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := decodeBody(suite, w)
	suite.Equal("Zone", body["details"].(map[string]any)["field"])
}

func (suite *BatchHandlerTestSuite) TestAddItem_CapacityExceeded() {
	suite.mockBatch.On("AddItem", mock.Anything, mock.Anything, "b1", mock.Anything, (*int64)(nil)).
		Return(nil, nil, apperrors.ErrCapacityExceeded).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches/b1/items", "alice", dto.AddLineItemRequest{}, nil)
	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

func (suite *BatchHandlerTestSuite) TestBadIfMatchIsRejected() {
	w := suite.do(http.MethodPost, "/api/v1/batches/b1/submit", "alice", nil, map[string]string{"If-Match": "abc"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *BatchHandlerTestSuite) TestSubmit_StatusMapping() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty", apperrors.ErrEmptyBatch, http.StatusConflict},
		{"wrong state", &apperrors.InvalidStateError{Operation: "submit", Status: "PENDING"}, http.StatusConflict},
		{"stale", apperrors.ErrConflict, http.StatusConflict},
		{"storage", apperrors.NewAppError(500, "db down", apperrors.ErrStorageFailure), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.mockBatch.On("Submit", mock.Anything, mock.Anything, "b1", (*int64)(nil)).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/batches/b1/submit", "alice", nil, nil)
			suite.Equal(tc.status, w.Code)
			if tc.status == http.StatusInternalServerError {
				suite.NotContains(w.Body.String(), "db down")
			}
		})
	}
}

func (suite *BatchHandlerTestSuite) TestApprove_SelfApprovalIsForbidden() {
	suite.mockBatch.On("Approve", mock.Anything, actorNamed("alice"), "b1", "", (*int64)(nil)).
		Return(nil, apperrors.ErrSelfApproval).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches/b1/approve", "alice", nil, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *BatchHandlerTestSuite) TestApprove_WithRemarks() {
	b := sampleBatch("b1", domain.Approved, 6)
	suite.mockBatch.On("Approve", mock.Anything, actorNamed("bob"), "b1", "looks right", versionPtr(5)).
		Return(b, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/batches/b1/approve", "bob",
		dto.ApproveBatchRequest{Remarks: "looks right"}, map[string]string{"If-Match": `W/"5"`})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("APPROVED", decodeBody(suite, w)["batch"].(map[string]any)["status"])
}

func (suite *BatchHandlerTestSuite) TestReject_RequiresReason() {
	w := suite.do(http.MethodPost, "/api/v1/batches/b1/reject", "bob", map[string]string{}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *BatchHandlerTestSuite) TestExport_ServesFile() {
	file := &dto.ExportedFile{
		Filename:    "CRWB_EFT_REF_20261018_093000.txt",
		ContentType: eftfile.FormatTXT.ContentType(),
		Content:     []byte("H,...\n"),
	}
	suite.mockExport.On("ExportBatch", mock.Anything, actorNamed("bob"), "b1", eftfile.FormatTXT).Return(file, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/batches/b1/export", "bob", nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`attachment; filename="CRWB_EFT_REF_20261018_093000.txt"`, w.Header().Get("Content-Disposition"))
	suite.Equal("H,...\n", w.Body.String())
}

func (suite *BatchHandlerTestSuite) TestExport_NotApprovedAndTotals() {
	suite.mockExport.On("ExportBatch", mock.Anything, mock.Anything, "b1", eftfile.FormatCSV).
		Return(nil, &apperrors.TotalsMismatchError{
			Stored:     decimal.RequireFromString("100"),
			Computed:   decimal.RequireFromString("90"),
			Difference: decimal.RequireFromString("10"),
		}).Once()
	suite.mockExport.On("ExportBatch", mock.Anything, mock.Anything, "b2", eftfile.FormatTXT).
		Return(nil, apperrors.ErrNotApproved).Once()

	w := suite.do(http.MethodGet, "/api/v1/batches/b1/export?format=csv", "bob", nil, nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("10.00", decodeBody(suite, w)["details"].(map[string]any)["difference"])

	w = suite.do(http.MethodGet, "/api/v1/batches/b2/export", "bob", nil, nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *BatchHandlerTestSuite) TestExport_UnknownFormat() {
	w := suite.do(http.MethodGet, "/api/v1/batches/b1/export?format=pdf", "bob", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *BatchHandlerTestSuite) TestSummaryRouteDoesNotHitGetBatch() {
	file := &dto.ExportedFile{Filename: "CRWB_batches.csv", ContentType: "text/csv; charset=utf-8", Content: []byte("Batch Reference\n")}
	suite.mockExport.On("ExportBatchSummary", mock.Anything, actorNamed("alice"), portssvc.SummaryXLSX).Return(file, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/batches/summary?format=xlsx", "alice", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *BatchHandlerTestSuite) TestAuditTrail() {
	remarks := "Exported as TXT"
	suite.mockBatch.On("ListAuditTrail", mock.Anything, mock.Anything, "b1").Return([]domain.AuditEvent{
		{AuditID: "a2", BatchID: "b1", Action: domain.ActionExported, ActorID: "bob", Remarks: &remarks},
		{AuditID: "a1", BatchID: "b1", Action: domain.ActionSubmitted, ActorID: "alice"},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/batches/b1/audit", "alice", nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	var events []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &events))
	suite.Len(events, 2)
	suite.Equal("EXPORTED", events[0]["action"])
}

func (suite *BatchHandlerTestSuite) TestDeleteBatch() {
	suite.mockBatch.On("DeleteBatch", mock.Anything, actorNamed("alice"), "b1", versionPtr(2)).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/batches/b1", "alice", nil, map[string]string{"If-Match": `"2"`})
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *BatchHandlerTestSuite) TestValidateFile_JSON() {
	summary := &eftfile.Summary{BatchName: "October", CurrencyCode: "MWK", TotalAmount: decimal.RequireFromString("10.00"), RecordCount: 1}
	suite.mockExport.On("ValidateFile", mock.Anything, "H,...").Return(summary, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/eft-files/validate", "alice", dto.ValidateFileRequest{Content: "H,..."}, nil)

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody(suite, w)
	suite.Equal(true, body["valid"])
	suite.EqualValues(1, body["recordCount"])
}

func (suite *BatchHandlerTestSuite) TestValidateFile_JSONBodyTooLarge() {
	content := strings.Repeat("x", 8<<20+1)

	w := suite.do(http.MethodPost, "/api/v1/eft-files/validate", "alice", dto.ValidateFileRequest{Content: content}, nil)

	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
	suite.mockExport.AssertNotCalled(suite.T(), "ValidateFile", mock.Anything, mock.Anything)
}

func (suite *BatchHandlerTestSuite) TestValidateFile_MultipartMalformedRecord() {
	suite.mockExport.On("ValidateFile", mock.Anything, "bad-content").
		Return(nil, &apperrors.MalformedRecordError{Line: 2, FieldCount: 3}).Once()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "batch.txt")
	suite.Require().NoError(err)
	_, _ = part.Write([]byte("bad-content"))
	suite.Require().NoError(mw.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/eft-files/validate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("alice", "accounts_personnel"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := decodeBody(suite, w)
	suite.Equal(false, body["valid"])
	suite.EqualValues(2, body["line"])
	suite.True(strings.Contains(body["message"].(string), "line 2"))
}

func (suite *BatchHandlerTestSuite) TestLookupScheme() {
	suite.mockMasterData.On("GetSchemeDetails", mock.Anything, "s1").Return(&domain.SchemeDetails{
		Scheme: domain.Scheme{SchemeID: "s1", SchemeCode: "SC1"},
	}, nil).Once()
	suite.mockMasterData.On("GetSupplierDetails", mock.Anything, "missing").
		Return(nil, fmt.Errorf("%w: supplier missing", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/lookups/schemes/s1", "alice", nil, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/lookups/suppliers/missing", "alice", nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestBatchHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BatchHandlerTestSuite))
}
