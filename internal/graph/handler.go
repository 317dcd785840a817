package graph

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler returns the gin handler executing GraphQL requests against the
// schema. Resolver errors are reported in the response body; the HTTP status
// stays 200 so clients distinguish transport failures from field errors.
func Handler(schema graphql.Schema, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"message": "invalid request body"}},
			})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Request.Context(),
		})

		if result.HasErrors() {
			for _, gqlErr := range result.Errors {
				logger.Debug("graphql field error", zap.String("message", gqlErr.Message))
			}
		}

		c.JSON(http.StatusOK, result)
	}
}
