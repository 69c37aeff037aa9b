package commands

import (
	"SmartDocs/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"SmartDocs/internal/cli/api"
	"SmartDocs/internal/cli/auth"
)

type documentItem struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	FileName   string `json:"filename"`
	Department string `json:"department"`
	AccessMode string `json:"access_mode"`
	UploadedAt string `json:"uploaded_at"`
}

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "List documents visible to you" }
func (listCmd) Usage() string       { return "list" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/documents"
	token, _ := auth.LoadToken()
	resp, body, err := api.GetJSON(ctx, endpoint, token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("not logged in")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var docs []documentItem
	if err := json.Unmarshal(body, &docs); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(docs) == 0 {
		fmt.Fprintln(Out, "No documents")
		return nil
	}
	for _, d := range docs {
		fmt.Fprintf(Out, "- %d  %s  file=%s  dept=%s  mode=%s\n",
			d.ID, d.Title, d.FileName, d.Department, d.AccessMode)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(docs))
	return nil
}

func init() { RegisterCmd(listCmd{}) }
