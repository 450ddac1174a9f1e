package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Rocket Fuel resources.
	uriScheme = "rocketfuel://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "Who is signed in to Rocket Fuel",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	// Template for rendered question threads.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "questions/{userId}/{questionId}",
		Name:        "question-thread",
		Description: "A question and its answers as markdown",
		MIMEType:    "text/markdown",
	}, s.handleQuestionResource)
}

// sessionInfo never carries the tokens.
type sessionInfo struct {
	SignedIn bool   `json:"signed_in"`
	UserID   int64  `json:"user_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (s *Server) handleSessionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var info sessionInfo
	if s.ports.Session != nil {
		current := s.ports.Session.Current()
		info = sessionInfo{
			SignedIn: current.IsSignedIn(),
			UserID:   current.User.ID,
			Name:     current.User.Name,
			Email:    current.User.Email,
		}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling session: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleQuestionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	userID, questionID, ok := extractQuestionIDs(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	thread, err := s.ports.Questions.Thread(ctx, userID, questionID)
	if err != nil {
		return nil, fmt.Errorf("loading question: %w", err)
	}

	var b strings.Builder
	q := thread.Question
	fmt.Fprintf(&b, "# %s\n\n", q.Title)
	if labels := q.TagLabels(); len(labels) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(labels, ", "))
	}
	fmt.Fprintf(&b, "Asked by %s · %+d votes", q.CreatedBy, q.Votes)
	if q.Bounty > 0 {
		fmt.Fprintf(&b, " · %d coins", q.Bounty)
	}
	b.WriteString("\n\n")
	b.WriteString(q.Question)
	b.WriteString("\n")

	for _, a := range thread.Answers {
		b.WriteString("\n---\n\n")
		fmt.Fprintf(&b, "Answer by %s · %+d votes", a.CreatedBy, a.Votes)
		if a.Accepted {
			b.WriteString(" · accepted")
		}
		b.WriteString("\n\n")
		b.WriteString(a.Answer)
		b.WriteString("\n")
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     b.String(),
		}},
	}, nil
}

// extractQuestionIDs parses rocketfuel://questions/{userId}/{questionId}.
func extractQuestionIDs(uri string) (userID, questionID int64, ok bool) {
	const prefix = uriScheme + "questions/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, 0, false
	}

	parts := strings.Split(strings.TrimPrefix(uri, prefix), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return 0, 0, false
	}
	questionID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || questionID <= 0 {
		return 0, 0, false
	}
	return userID, questionID, true
}
