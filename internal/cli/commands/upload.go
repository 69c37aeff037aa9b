package commands

import (
	"SmartDocs/internal/config"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"

	"SmartDocs/internal/cli/api"
	"SmartDocs/internal/cli/auth"
)

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Upload a document (senior roles only)" }
func (uploadCmd) Usage() string {
	return "upload <file> [--title T] [--desc D] [--dept D] [--access R1,R2|'All Employees']"
}

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	filePath := args[0]

	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(Out)
	title := fs.String("title", "", "document title (default: file name)")
	desc := fs.String("desc", "", "document description")
	dept := fs.String("dept", "", "department (default: General)")
	access := fs.String("access", "", "comma-separated role names, or 'All Employees'")
	if err := fs.Parse(args[1:]); err != nil {
		return ErrUsage
	}

	fields := map[string][]string{
		"title":       {*title},
		"description": {*desc},
		"department":  {*dept},
	}
	for _, r := range strings.Split(*access, ",") {
		if r = strings.TrimSpace(r); r != "" {
			fields["access_roles"] = append(fields["access_roles"], r)
		}
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/documents"
	token, _ := auth.LoadToken()
	resp, body, err := api.PostFile(ctx, endpoint, filePath, fields, token)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusCreated:
		var doc struct {
			ID       int64  `json:"id"`
			Title    string `json:"title"`
			FileName string `json:"filename"`
		}
		if err := json.Unmarshal(body, &doc); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Fprintf(Out, "Uploaded %s as document %d (%s)\n", doc.FileName, doc.ID, doc.Title)
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("not logged in")
	case http.StatusForbidden:
		return fmt.Errorf("your role is not allowed to upload documents")
	}
	return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func init() { RegisterCmd(uploadCmd{}) }
