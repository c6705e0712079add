package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id parameter", nil)
	}
	return id, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

// pageParams reads page/limit query values and converts them to offset/limit.
func pageParams(c *fiber.Ctx, defaultLimit int) (page, limit, offset int) {
	page = parseInt(c.Query("page"), 1)
	limit = parseInt(c.Query("limit"), defaultLimit)
	offset = (page - 1) * limit
	return page, limit, offset
}
