package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/username/stonefolio/src/logger"
	"github.com/username/stonefolio/src/models"
)

// RecordSource is the external record store collaborator. The pipeline only
// ever issues the one fixed product-line query, optionally narrowed to one
// account code.
type RecordSource interface {
	FetchProductLines(ctx context.Context, accountCode string) ([]models.RawRecord, error)
}

// productLineQuery is the fixed query shape: every contract product line
// joined to its parent contract, account and product, newest contracts first.
// No other query shape is ever issued.
const productLineQuery = `SELECT Quantity__c, Length__c, Width__c, Height__c, Crates__c, ` +
	`M2__c, M3__c, Tons__c, Containers__c, Sales_Price__c, Total_Price__c, Charge_Unit__c, ` +
	`Contract__r.Name, Contract__r.CreatedDate, ` +
	`Account__r.Account_Code__c, Account__r.Segment__c, ` +
	`Product__r.ProductCode, Product__r.Family, Product__r.Stone_Color__c, Product__r.Description__c ` +
	`FROM Contract_Product_Line__c`

const orderByClause = ` ORDER BY Contract__r.CreatedDate DESC`

// queryResponse is one page of a SOQL query result.
type queryResponse struct {
	TotalSize      int                `json:"totalSize"`
	Done           bool               `json:"done"`
	NextRecordsURL string             `json:"nextRecordsUrl"`
	Records        []models.RawRecord `json:"records"`
}

// Client is the REST implementation of RecordSource.
type Client struct {
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	apiVersion  string
}

func NewClient(tokenSource oauth2.TokenSource, apiVersion string, timeout time.Duration) *Client {
	return &Client{
		tokenSource: tokenSource,
		httpClient:  &http.Client{Timeout: timeout},
		apiVersion:  apiVersion,
	}
}

// FetchProductLines runs the fixed query and follows pagination until done.
// The optional accountCode narrowing is a pass-through equality filter; the
// pipeline applies its own filters regardless.
func (c *Client) FetchProductLines(ctx context.Context, accountCode string) ([]models.RawRecord, error) {
	soql := productLineQuery
	if strings.TrimSpace(accountCode) != "" {
		soql += fmt.Sprintf(" WHERE Account__r.Account_Code__c = '%s'", escapeSOQL(strings.TrimSpace(accountCode)))
	}
	soql += orderByClause

	tok, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("salesforce authentication failed: %w", err)
	}
	instanceURL, _ := tok.Extra("instance_url").(string)
	if instanceURL == "" {
		return nil, fmt.Errorf("salesforce token response missing instance URL")
	}

	path := fmt.Sprintf("/services/data/%s/query?q=%s", c.apiVersion, url.QueryEscape(soql))

	var records []models.RawRecord
	for {
		page, err := c.fetchPage(ctx, tok, instanceURL+path)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Done || page.NextRecordsURL == "" {
			break
		}
		path = page.NextRecordsURL
	}

	if logger.L != nil {
		logger.L.Debug("Fetched product line records", "count", len(records), "narrowedToAccount", accountCode != "")
	}
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, tok *oauth2.Token, fullURL string) (*queryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build query request: %w", err)
	}
	tok.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("salesforce query request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("salesforce query returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return &page, nil
}

// escapeSOQL escapes the single-quoted SOQL string literal.
func escapeSOQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
