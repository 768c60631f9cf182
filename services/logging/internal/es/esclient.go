package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"
)

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es error: %s: %s", res.Status(), body)
	}

	return client, nil
}

// LogIndexer mirrors every ingested log line into an index, as a secondary
// best-effort sink next to the broker.
type LogIndexer struct {
	Client *elasticsearch.Client
	Index  string
}

func (ix *LogIndexer) IndexLine(ctx context.Context, serviceName, line string) error {
	doc, err := json.Marshal(map[string]string{
		"service_name": serviceName,
		"line":         line,
	})
	if err != nil {
		return err
	}

	res, err := ix.Client.Index(ix.Index, bytes.NewReader(doc), ix.Client.Index.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}
