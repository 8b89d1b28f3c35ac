package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/tryonce/pkg/httperr"
)

// statusMap pairs service sentinels with the HTTP status they surface as.
type statusMap []struct {
	target error
	status int
}

func (m statusMap) wrap(err error) error {
	for _, e := range m {
		if errors.Is(err, e.target) {
			return httperr.Wrap(e.status, err)
		}
	}
	return err
}

// fail attaches err to the context for the error boundary and stops the chain.
func fail(c *gin.Context, m statusMap, err error) {
	_ = c.Error(m.wrap(err))
	c.Abort()
}

// bindFailed attaches a binding error; the boundary answers it with 400.
func bindFailed(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.Abort()
}
