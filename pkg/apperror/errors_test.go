package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found sentinel", ErrNotFound, http.StatusNotFound},
		{"wrapped unauthorized", fmt.Errorf("resolve: %w", ErrUnauthorized), http.StatusUnauthorized},
		{"forbidden helper", Forbidden("not yours"), http.StatusForbidden},
		{"invalid input helper", InvalidInput("title is required"), http.StatusBadRequest},
		{"wrapped invalid input", fmt.Errorf("bind: %w", ErrInvalidInput), http.StatusBadRequest},
		{"conflict helper", Conflict("already liked"), http.StatusConflict},
		{"transient", Transient(context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapErrorToStatus(tc.err); got != tc.want {
				t.Fatalf("MapErrorToStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestHelpersKeepSentinel(t *testing.T) {
	if !errors.Is(Conflict("email already registered"), ErrConflict) {
		t.Fatal("conflict helper should wrap ErrConflict")
	}
	if !errors.Is(Transient(errors.New("dial tcp: refused")), ErrTransient) {
		t.Fatal("transient helper should wrap ErrTransient")
	}
}

func TestPublicMessageHidesServerErrors(t *testing.T) {
	if got := PublicMessage(errors.New("pq: relation \"jokes\" does not exist")); got != "server error" {
		t.Fatalf("PublicMessage() = %q, want generic message", got)
	}
	if got := PublicMessage(Transient(context.DeadlineExceeded)); got != "server error" {
		t.Fatalf("PublicMessage() = %q, want generic message", got)
	}
	if got := PublicMessage(NotFound("joke not found")); got != "joke not found" {
		t.Fatalf("PublicMessage() = %q, want client message", got)
	}
}
