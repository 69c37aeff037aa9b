package commands

import (
	"SmartDocs/internal/config"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"SmartDocs/internal/cli/api"
	"SmartDocs/internal/cli/auth"
)

type grantCmd struct{}

func (grantCmd) Name() string        { return "grant" }
func (grantCmd) Description() string { return "Grant document access to a user id or a role" }
func (grantCmd) Usage() string {
	return "grant <document-id> user <user-id>|role <role-name> [level]"
}

func (grantCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	docID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}

	payload := map[string]any{}
	switch args[1] {
	case "user":
		uid, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return ErrUsage
		}
		payload["user_id"] = uid
	case "role":
		payload["role"] = args[2]
	default:
		return ErrUsage
	}
	if len(args) > 3 {
		payload["access_level"] = args[3]
	}

	endpoint := fmt.Sprintf("%s/api/documents/%d/access", strings.TrimRight(cfg.ServerURL, "/"), docID)
	token, _ := auth.LoadToken()
	resp, body, err := api.PostJSON(ctx, endpoint, payload, token)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusCreated:
		fmt.Fprintf(Out, "Access granted on document %d\n", docID)
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("not logged in")
	case http.StatusForbidden:
		return fmt.Errorf("your role is not allowed to grant access")
	case http.StatusNotFound:
		return fmt.Errorf("document or user not found")
	case http.StatusBadRequest:
		return fmt.Errorf("rejected: %s", strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(grantCmd{}) }
