package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/neonroyal/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch archive
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
	Transport   http.RoundTripper // nil uses the client default
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "neonroyal",
	}
}

// roundDocument is a settled round as indexed in Elasticsearch
type roundDocument struct {
	ID        string    `json:"round_id"`
	Game      string    `json:"game"`
	Amount    int64     `json:"amount"`
	Outcome   string    `json:"outcome"`
	Narration string    `json:"narration"`
	Timestamp time.Time `json:"timestamp"`
}

const roundsMapping = `{
	"mappings": {
		"properties": {
			"round_id": { "type": "keyword" },
			"game": { "type": "keyword" },
			"amount": { "type": "long" },
			"outcome": { "type": "keyword" },
			"narration": { "type": "text" },
			"timestamp": { "type": "date" }
		}
	}
}`

// ElasticsearchArchive indexes rounds into <prefix>-rounds
type ElasticsearchArchive struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticsearchArchive creates the client and makes sure the rounds index
// exists
func NewElasticsearchArchive(ctx context.Context, config *ElasticsearchConfig) (*ElasticsearchArchive, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
		Transport: config.Transport,
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "neonroyal"
	}

	a := &ElasticsearchArchive{
		client: client,
		index:  prefix + "-rounds",
	}

	if err := a.initIndex(ctx); err != nil {
		return nil, fmt.Errorf("error initializing index: %w", err)
	}

	return a, nil
}

// Index returns the name of the rounds index
func (a *ElasticsearchArchive) Index() string {
	return a.index
}

func (a *ElasticsearchArchive) initIndex(ctx context.Context) error {
	res, err := a.client.Indices.Exists([]string{a.index}, a.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if rounds index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: a.index,
		Body:  bytes.NewReader([]byte(roundsMapping)),
	}

	res, err = req.Do(ctx, a.client)
	if err != nil {
		return fmt.Errorf("error creating rounds index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating rounds index: %s", res.String())
	}

	return nil
}

// Record indexes the round under its id, so re-recording is idempotent
func (a *ElasticsearchArchive) Record(ctx context.Context, entry *entities.HistoryEntry) error {
	body, err := json.Marshal(roundDocument{
		ID:        entry.ID,
		Game:      string(entry.Game),
		Amount:    entry.Amount,
		Outcome:   string(entry.Outcome),
		Narration: entry.Narration,
		Timestamp: entry.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("error marshaling round: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      a.index,
		DocumentID: entry.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "wait_for",
	}

	res, err := req.Do(ctx, a.client)
	if err != nil {
		return fmt.Errorf("error indexing round: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing round: %s", res.String())
	}

	return nil
}

// Recent searches the newest rounds
func (a *ElasticsearchArchive) Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	query := `{
		"query": { "match_all": {} },
		"sort": [
			{ "timestamp": { "order": "desc" } }
		]
	}`

	res, err := a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(a.index),
		a.client.Search.WithBody(bytes.NewReader([]byte(query))),
		a.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching rounds: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source roundDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing rounds: %w", err)
	}

	entries := make([]entities.HistoryEntry, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		doc := hit.Source
		entries = append(entries, entities.HistoryEntry{
			ID:        doc.ID,
			Game:      entities.GameType(doc.Game),
			Amount:    doc.Amount,
			Outcome:   entities.Outcome(doc.Outcome),
			Narration: doc.Narration,
			Timestamp: doc.Timestamp,
		})
	}

	return entries, nil
}

// Prune deletes rounds older than cutoff
func (a *ElasticsearchArchive) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`{
		"query": {
			"range": { "timestamp": { "lt": %q } }
		}
	}`, cutoff.UTC().Format(time.RFC3339))

	res, err := a.client.DeleteByQuery(
		[]string{a.index},
		bytes.NewReader([]byte(query)),
		a.client.DeleteByQuery.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("error pruning rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("error pruning rounds: %s", res.String())
	}

	var result struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("error parsing prune response: %w", err)
	}

	return result.Deleted, nil
}

// Close is a no-op; the HTTP client holds no resources that need releasing
func (a *ElasticsearchArchive) Close() error {
	return nil
}
