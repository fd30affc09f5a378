package net

import (
	"net/http"

	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
)

// HTTPStatus maps a platform error to its http status, nil meaning 200
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}
