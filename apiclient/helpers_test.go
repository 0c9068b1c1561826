package apiclient_test

import (
	"net/http/httptest"
	"testing"

	"contactsui/apiclient"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newUpstream starts an echo router standing in for the remote contacts API.
func newUpstream(t *testing.T, register func(e *echo.Echo)) *httptest.Server {
	t.Helper()
	e := echo.New()
	register(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, host string) *apiclient.Client {
	t.Helper()
	client, err := apiclient.NewClient(apiclient.Options{Host: host})
	require.NoError(t, err)
	return client
}

// spreadsheet builds a real .xlsx workbook with a header and one contact row.
func spreadsheet(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "email", "phone"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alice", "alice@example.com", "1234567890"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
