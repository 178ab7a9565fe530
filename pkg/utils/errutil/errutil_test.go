package errutil_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fieldswitch/pkg/utils/errutil"
)

func TestHandle(t *testing.T) {
	gt.NoError(t, errutil.Handle(context.Background(), nil, "nothing"))

	base := errors.New("boom")
	err := errutil.Handle(context.Background(), goerr.Wrap(base, "wrapped", goerr.V("key", "value")), "failed")
	gt.Error(t, err).Is(base)
}

func newSentryContext(t *testing.T) (context.Context, *sentry.MockTransport) {
	t.Helper()

	transport := &sentry.MockTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	gt.NoError(t, err).Required()

	hub := sentry.NewHub(client, sentry.NewScope())
	return sentry.SetHubOnContext(context.Background(), hub), transport
}

func TestHandle_ReportsToSentry(t *testing.T) {
	ctx, transport := newSentryContext(t)

	err := goerr.New("refresh failed", goerr.V("short_name", "city"))
	gt.Error(t, errutil.Handle(ctx, err, "failed to refresh")).Is(err)

	events := transport.Events()
	gt.Array(t, events).Length(1).Required()
	values, ok := events[0].Contexts["goerr"]
	gt.Bool(t, ok).True()
	gt.Value(t, values["short_name"]).Equal(any("city"))
}

func TestHandleHTTP(t *testing.T) {
	t.Run("client error shows message", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, goerr.New("bad property"), http.StatusBadRequest)

		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, w.Body.String()).Contains("bad property")
	})

	t.Run("server error hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, goerr.New("firestore password=xyz"), http.StatusInternalServerError)

		gt.Value(t, w.Code).Equal(http.StatusInternalServerError)
		gt.String(t, w.Body.String()).Contains("Internal Server Error")
		gt.Bool(t, strings.Contains(w.Body.String(), "password")).False()
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, nil, http.StatusInternalServerError)
		gt.Value(t, w.Code).Equal(http.StatusOK)
	})

	t.Run("only server errors are reported", func(t *testing.T) {
		ctx, transport := newSentryContext(t)

		errutil.HandleHTTP(ctx, httptest.NewRecorder(), goerr.New("bad property"), http.StatusBadRequest)
		gt.Array(t, transport.Events()).Length(0)

		errutil.HandleHTTP(ctx, httptest.NewRecorder(), goerr.New("list failed"), http.StatusInternalServerError)
		gt.Array(t, transport.Events()).Length(1)
	})
}
