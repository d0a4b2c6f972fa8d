package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aswanthpvtk/employee-Task-Backend/internal/employee"
	employeeerrors "github.com/aswanthpvtk/employee-Task-Backend/internal/employee/errors"
	"github.com/aswanthpvtk/employee-Task-Backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn  func(ctx context.Context) ([]employee.EmployeeSummaryResponse, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id, mode string, payload map[string]any) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeSummaryResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id, mode string, payload map[string]any) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, mode, payload)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	employee.RegisterRoutes(r.Group("/api"), employee.NewHandler(svc))
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "EMP-001", req.ID)
				assert.Equal(t, "ABCDE1234F", req.PersonalInfo["pan"])
				return employee.EmployeeResponse{ID: "x1", EmployeeID: req.ID, Status: employee.StatusActive}, nil
			},
		}
		body := `{"id":"EMP-001","firstName":"Asha","lastName":"Menon","workEmail":"asha@example.com","createdAt":"2024-03-01","personalInfo":{"pan":"ABCDE1234F"}}`

		rec := serve(setupRouter(svc), http.MethodPost, "/api/employees", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		data := decodeBody(t, rec)["data"].(map[string]any)
		assert.Equal(t, "active", data["status"])
	})

	t.Run("missing first name", func(t *testing.T) {
		rec := serve(setupRouter(&fakeEmployeeService{}), http.MethodPost, "/api/employees",
			`{"id":"EMP-001","lastName":"Menon","workEmail":"asha@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "First Name is required", decodeBody(t, rec)["message"])
	})

	t.Run("service validation error", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeIDRequired
			},
		}

		rec := serve(setupRouter(svc), http.MethodPost, "/api/employees",
			`{"firstName":"Asha","lastName":"Menon","workEmail":"asha@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Employee ID is required", decodeBody(t, rec)["message"])
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]employee.EmployeeSummaryResponse, error) {
			return []employee.EmployeeSummaryResponse{{ID: "x1", EmployeeID: "EMP-001", FirstName: "Asha"}}, nil
		},
	}

	rec := serve(setupRouter(svc), http.MethodGet, "/api/employees", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["data"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "EMP-001", item["employeeId"])
	assert.NotContains(t, item, "personalInfo")
	assert.NotContains(t, item, "paymentInfo")
	assert.NotContains(t, item, "sections")
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				assert.Equal(t, "EMP-001", id)
				return employee.EmployeeResponse{ID: "x1", EmployeeID: id}, nil
			},
		}

		rec := serve(setupRouter(svc), http.MethodGet, "/api/employees/EMP-001", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}

		rec := serve(setupRouter(svc), http.MethodGet, "/api/employees/EMP-404", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Employee not found", decodeBody(t, rec)["message"])
	})

	t.Run("storage failure is a 500", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("connection refused")
			},
		}

		rec := serve(setupRouter(svc), http.MethodGet, "/api/employees/EMP-001", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeBody(t, rec)["message"])
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	t.Run("forwards mode and payload", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, id, mode string, payload map[string]any) (employee.EmployeeResponse, error) {
				assert.Equal(t, "EMP-001", id)
				assert.Equal(t, "taxonomy", mode)
				assert.Equal(t, "ABCDE1234F", payload["pan"])
				return employee.EmployeeResponse{ID: "x1"}, nil
			},
		}

		rec := serve(setupRouter(svc), http.MethodPatch, "/api/employees/EMP-001?mode=taxonomy", `{"pan":"ABCDE1234F"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non object body", func(t *testing.T) {
		rec := serve(setupRouter(&fakeEmployeeService{}), http.MethodPatch, "/api/employees/EMP-001", `["pan"]`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("null body", func(t *testing.T) {
		rec := serve(setupRouter(&fakeEmployeeService{}), http.MethodPatch, "/api/employees/EMP-001", `null`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error { return nil },
		}

		rec := serve(setupRouter(svc), http.MethodDelete, "/api/employees/EMP-001", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Employee deleted successfully", decodeBody(t, rec)["message"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error { return employeeerrors.ErrEmployeeNotFound },
		}

		rec := serve(setupRouter(svc), http.MethodDelete, "/api/employees/EMP-404", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEmployeeHandler_SuccessEnvelope(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]employee.EmployeeSummaryResponse, error) {
			return []employee.EmployeeSummaryResponse{{ID: "x1", EmployeeID: "EMP-001"}}, nil
		},
		GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{ID: "x1", EmployeeID: id, Sections: []employee.SectionSnapshot{}}, nil
		},
	}
	r := setupRouter(svc)

	t.Run("list wraps an array", func(t *testing.T) {
		body := decodeBody(t, serve(r, http.MethodGet, "/api/employees", ""))

		assert.Equal(t, true, body["ok"])
		assert.NotContains(t, body, "error")
		assert.IsType(t, []any{}, body["data"])
	})

	t.Run("get wraps the record", func(t *testing.T) {
		body := decodeBody(t, serve(r, http.MethodGet, "/api/employees/EMP-001", ""))

		assert.Equal(t, true, body["ok"])
		assert.NotContains(t, body, "error")
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "x1", data["id"])
		assert.Equal(t, "EMP-001", data["employeeId"])
		assert.Equal(t, []any{}, data["sections"])
	})
}
