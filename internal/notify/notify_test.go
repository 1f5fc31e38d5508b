package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"lingosphere/internal/models"
	"lingosphere/internal/qerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inquiry = &models.Inquiry{
	ID:      "i1",
	Name:    "Alex Johnson",
	Email:   "alex@example.com",
	Message: "When does the next course start?",
}

func TestSendGridInquiryReceived(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		raw, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sg := NewSendGrid(SendGridOptions{
		APIKey:    "key",
		SiteName:  "English Excellence",
		FromEmail: "noreply@example.com",
		ToEmail:   "staff@example.com",
		Host:      srv.URL,
	})
	require.NoError(t, sg.InquiryReceived(context.Background(), inquiry))

	personalizations := body["personalizations"].([]interface{})
	p := personalizations[0].(map[string]interface{})
	assert.Equal(t, "[English Excellence] New inquiry from Alex Johnson", p["subject"])
	to := p["to"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "staff@example.com", to["email"])
	assert.Equal(t, "alex@example.com", body["reply_to"].(map[string]interface{})["email"])
}

func TestSendGridFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	sg := NewSendGrid(SendGridOptions{APIKey: "bad", SiteName: "x", FromEmail: "a@example.com", ToEmail: "b@example.com", Host: srv.URL})
	err := sg.InquiryReceived(context.Background(), inquiry)
	assert.True(t, errors.Is(err, qerrors.ErrExternalService))
}

type recorder struct {
	got []*models.Inquiry
	err error
}

func (r *recorder) InquiryReceived(_ context.Context, inq *models.Inquiry) error {
	r.got = append(r.got, inq)
	return r.err
}

func TestSendSwallowsErrors(t *testing.T) {
	r := &recorder{err: errors.New("down")}
	Send(context.Background(), r, inquiry)
	assert.Len(t, r.got, 1)

	Send(context.Background(), nil, inquiry)
	assert.NoError(t, Log{}.InquiryReceived(context.Background(), inquiry))
}
