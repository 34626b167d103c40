package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"edulead_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"reference not found", apperr.ReferenceNotFound("course not found"), http.StatusNotFound},
		{"invalid reference", apperr.InvalidReference("no such student"), http.StatusBadRequest},
		{"duplicate lead", apperr.Conflict("lead already exists for this student, course and branch"), http.StatusConflict},
		{"persistence failure", apperr.PersistenceFailure("failed to create lead", errors.New("connection reset")), http.StatusInternalServerError},
		{"untyped", errors.New("boom"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			if !HandleError(c, tc.err) {
				t.Fatalf("expected error to be handled")
			}
			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestHandleErrorNil(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	if HandleError(c, nil) {
		t.Fatalf("nil error must not be handled")
	}
}
