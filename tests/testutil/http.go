package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/interfaces/http/dto"
)

// HTTPTestCase drives a single handler invocation and checks the standard
// response envelope.
type HTTPTestCase struct {
	Name              string
	Method            string
	Path              string
	Body              interface{}
	Headers           map[string]string
	AgencyID          string
	ExpectedStatus    int
	ExpectedErrorCode string
	Setup             func(t *testing.T, tc *TestContext)
	Validate          func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs each case as a subtest against the handler.
func RunHTTPTestCases(t *testing.T, handler gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handler, tc)
		})
	}
}

// RunHTTPTestCase builds the request, applies the agency scope, invokes the
// handler directly and verifies status and envelope expectations.
func RunHTTPTestCase(t *testing.T, handler gin.HandlerFunc, tc HTTPTestCase) {
	t.Helper()

	var body io.Reader
	if tc.Body != nil {
		payload, err := json.Marshal(tc.Body)
		require.NoError(t, err, "Failed to marshal request body")
		body = bytes.NewReader(payload)
	}

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}
	req := httptest.NewRequest(method, path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	testCtx := &TestContext{Context: c, Recorder: w}
	if tc.AgencyID != "" {
		testCtx.SetAgencyID(tc.AgencyID)
	}
	if tc.Setup != nil {
		tc.Setup(t, testCtx)
	}

	handler(c)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "Unexpected status code")
	}
	if tc.ExpectedErrorCode != "" {
		AssertErrorResponse(t, testCtx, tc.ExpectedErrorCode)
	}
	if tc.Validate != nil {
		tc.Validate(t, testCtx)
	}
}

// DecodeResponse parses the response body into the standard envelope.
func DecodeResponse(t *testing.T, tc *TestContext) dto.Response {
	t.Helper()

	var resp dto.Response
	err := json.Unmarshal(tc.ResponseBody(), &resp)
	require.NoError(t, err, "Failed to parse response envelope")
	return resp
}

// JSONResponse parses the response body as a generic JSON object, for
// assertions that reach into the data payload.
func JSONResponse(t *testing.T, tc *TestContext) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	err := json.Unmarshal(tc.ResponseBody(), &result)
	require.NoError(t, err, "Failed to parse JSON response")
	return result
}

// JSONResponseAs parses the response body into the provided type.
func JSONResponseAs[T any](t *testing.T, tc *TestContext) T {
	t.Helper()

	var result T
	err := json.Unmarshal(tc.ResponseBody(), &result)
	require.NoError(t, err, "Failed to parse JSON response")
	return result
}

// AssertSuccessResponse asserts the envelope reports success with no error.
func AssertSuccessResponse(t *testing.T, tc *TestContext) {
	t.Helper()

	resp := DecodeResponse(t, tc)
	assert.True(t, resp.Success, "Expected success to be true")
	assert.Nil(t, resp.Error, "Expected no error in envelope")
}

// AssertErrorResponse asserts a failed envelope carrying the given error code.
func AssertErrorResponse(t *testing.T, tc *TestContext, expectedCode string) {
	t.Helper()

	resp := DecodeResponse(t, tc)
	assert.False(t, resp.Success, "Expected success to be false")
	require.NotNil(t, resp.Error, "Expected error object in envelope")
	assert.Equal(t, expectedCode, resp.Error.Code, "Unexpected error code")
}
