package utils_test

import (
	"testing"

	"photoshare-backend/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvReportsMissingFile(t *testing.T) {
	// No .env exists in the test working directory, so the caller gets
	// an error it can turn into a warning instead of silence.
	assert.Error(t, utils.LoadEnv())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PHOTOSHARE_TEST_KEY", "value")
	assert.Equal(t, "value", utils.GetEnv("PHOTOSHARE_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", utils.GetEnv("PHOTOSHARE_TEST_MISSING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("PHOTOSHARE_TEST_INT", "42")
	assert.Equal(t, 42, utils.GetEnvInt("PHOTOSHARE_TEST_INT", 7))

	t.Setenv("PHOTOSHARE_TEST_INT", "not a number")
	assert.Equal(t, 7, utils.GetEnvInt("PHOTOSHARE_TEST_INT", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("PHOTOSHARE_TEST_BOOL", "true")
	assert.True(t, utils.GetEnvBool("PHOTOSHARE_TEST_BOOL", false))

	t.Setenv("PHOTOSHARE_TEST_BOOL", "nope")
	assert.False(t, utils.GetEnvBool("PHOTOSHARE_TEST_BOOL", false))
}
