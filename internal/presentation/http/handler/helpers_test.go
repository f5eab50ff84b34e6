package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestContextHelpersTolerateMissingAndMistypedValues(t *testing.T) {
	c := testContext(t)

	assert.Nil(t, GetUserID(c))
	assert.Empty(t, GetUserEmail(c))
	assert.Empty(t, GetUserRole(c))

	c.Set("user_id", "not-a-uuid")
	c.Set("user_email", 42)
	c.Set("user_role", []string{"admin"})

	assert.Nil(t, GetUserID(c))
	assert.Empty(t, GetUserEmail(c))
	assert.Empty(t, GetUserRole(c))
}

func TestContextHelpersReturnSetValues(t *testing.T) {
	c := testContext(t)
	id := uuid.New()
	c.Set("user_id", id)
	c.Set("user_email", "owner@duka.co.ke")
	c.Set("user_role", "admin")

	got := GetUserID(c)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
	assert.Equal(t, "owner@duka.co.ke", GetUserEmail(c))
	assert.Equal(t, "admin", GetUserRole(c))
}

func TestParseTimeParam(t *testing.T) {
	parsed, err := parseTimeParam("2026-03-15")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, 15, parsed.Day())

	parsed, err = parseTimeParam("2026-03-15T08:30:00Z")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, 8, parsed.Hour())

	parsed, err = parseTimeParam("")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = parseTimeParam("yesterday")
	assert.Error(t, err)
}
