package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// AIClient forwards free-text questions to the answering service.
type AIClient struct {
	core *core
}

// Ask submits one question and returns the answer text, which may be
// markdown. userID is optional and attaches the question to a member.
func (c *AIClient) Ask(ctx context.Context, query, userID string) (string, error) {
	env, err := c.core.do(ctx, http.MethodPost, "/ai", askRequest{Query: query, UserID: userID}, false)
	if err != nil {
		return "", err
	}
	var answer string
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &answer); err != nil {
			return "", err
		}
	}
	if answer == "" {
		answer = env.Message
	}
	return answer, nil
}
