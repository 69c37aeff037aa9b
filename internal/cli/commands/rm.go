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

type rmCmd struct{}

func (rmCmd) Name() string        { return "rm" }
func (rmCmd) Description() string { return "Delete a document (senior role or the owner)" }
func (rmCmd) Usage() string       { return "rm <document-id>" }

func (rmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return ErrUsage
	}

	endpoint := fmt.Sprintf("%s/api/documents/%d", strings.TrimRight(cfg.ServerURL, "/"), id)
	token, _ := auth.LoadToken()
	resp, body, err := api.Delete(ctx, endpoint, token)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Fprintf(Out, "Document %d deleted\n", id)
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("not logged in")
	case http.StatusForbidden:
		return fmt.Errorf("you are not allowed to delete document %d", id)
	case http.StatusNotFound:
		return fmt.Errorf("document %d not found", id)
	}
	return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(rmCmd{}) }
