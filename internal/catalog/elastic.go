package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
)

func NewESClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error %s: %s", res.Status(), body)
	}

	return client, nil
}

type ESSearcher struct {
	ES    *elasticsearch.Client
	Index string
}

// IndexAll writes every product as a document keyed by product id.
func (s *ESSearcher) IndexAll(ctx context.Context, items []Product) error {
	for _, p := range items {
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}

		res, err := s.ES.Index(
			s.Index,
			bytes.NewReader(b),
			s.ES.Index.WithContext(ctx),
			s.ES.Index.WithDocumentID(strconv.Itoa(p.ID)),
		)
		if err != nil {
			return fmt.Errorf("index product %d: %w", p.ID, err)
		}
		isErr := res.IsError()
		status := res.Status()
		res.Body.Close()
		if isErr {
			return fmt.Errorf("index product %d: %s", p.ID, status)
		}
	}
	return nil
}

func (s *ESSearcher) Search(ctx context.Context, query string, from, size int) (int64, []Product, error) {
	// An empty query lists everything, matching MemorySearcher.
	q := map[string]interface{}{"match_all": map[string]interface{}{}}
	if query = strings.TrimSpace(query); query != "" {
		q = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description", "category"},
				"fuzziness": "AUTO",
			},
		}
	}

	body := map[string]interface{}{
		"query": q,
		"sort": []interface{}{"_score", map[string]interface{}{"id": "asc"}},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search encode: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
