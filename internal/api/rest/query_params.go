package rest

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ListRemixesQueryParams holds query parameters for GET /remix
type ListRemixesQueryParams struct {
	Creator string `form:"creator"`
}

// ParseListRemixesQuery parses query parameters for GET /remix
func ParseListRemixesQuery(c *gin.Context) (*ListRemixesQueryParams, error) {
	var params ListRemixesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	params.Creator = strings.TrimSpace(params.Creator)

	return &params, nil
}
