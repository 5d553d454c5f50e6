package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/domain/entity"
)

func registerAuthSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am registered as "([^"]*)" with password "([^"]*)"$`, iAmRegisteredAs)
	ctx.Step(`^I log in with email "([^"]*)" and password "([^"]*)"$`, iLogInWith)
	ctx.Step(`^I refresh my session$`, iRefreshMySession)
	ctx.Step(`^I refresh with the spent refresh token$`, iRefreshWithTheSpentToken)
	ctx.Step(`^I log out$`, iLogOut)
	ctx.Step(`^I clear my access token$`, iClearMyAccessToken)
}

func registerRequestSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

func registerSeedSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I have (\d+) categories$`, iHaveCategories)
	ctx.Step(`^I have a category named "([^"]*)"$`, iHaveACategoryNamed)
	ctx.Step(`^I have (\d+) expenses in that category$`, iHaveExpensesInThatCategory)
	ctx.Step(`^the following (incomes|expenses) exist:$`, theFollowingRecordsExist)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should be null$`, theResponseFieldShouldBeNull)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) entries$`, theResponseFieldShouldHaveEntries)
	ctx.Step(`^the response should list (\d+) results$`, theResponseShouldListResults)
}

// Auth steps

func iAmRegisteredAs(ctx context.Context, email, password string) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`{"email":%q,"name":"Owner","password":%q}`, email, password)
	if err := tc.send("POST", "/api/v1/auth/register", body); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %s",
			tc.response.StatusCode, tc.responseBody)
	}

	return tc.captureSession()
}

func iLogInWith(ctx context.Context, email, password string) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	if err := tc.send("POST", "/api/v1/auth/login", body); err != nil {
		return err
	}
	if tc.response.StatusCode == http.StatusOK {
		return tc.captureSession()
	}
	return nil
}

func iRefreshMySession(ctx context.Context) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	tc.spentToken = tc.refreshToken
	body := fmt.Sprintf(`{"refresh_token":%q}`, tc.refreshToken)
	if err := tc.send("POST", "/api/v1/auth/refresh", body); err != nil {
		return err
	}
	if tc.response.StatusCode == http.StatusOK {
		data, ok := tc.responseJSON.(map[string]any)
		if !ok {
			return fmt.Errorf("refresh response is not an object: %s", tc.responseBody)
		}
		tc.accessToken, _ = data["access_token"].(string)
		tc.refreshToken, _ = data["refresh_token"].(string)
	}
	return nil
}

func iRefreshWithTheSpentToken(ctx context.Context) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}
	if tc.spentToken == "" {
		return fmt.Errorf("no spent refresh token recorded")
	}

	body := fmt.Sprintf(`{"refresh_token":%q}`, tc.spentToken)
	return tc.send("POST", "/api/v1/auth/refresh", body)
}

func iLogOut(ctx context.Context) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`{"refresh_token":%q}`, tc.refreshToken)
	return tc.send("POST", "/api/v1/auth/logout", body)
}

func iClearMyAccessToken(ctx context.Context) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}
	tc.accessToken = ""
	return nil
}

// Request steps

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}
	return tc.send(method, endpoint, "")
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}
	return tc.send(method, endpoint, body.Content)
}

// Seed steps

func iHaveCategories(ctx context.Context, count int) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		category := entity.NewCategory(fmt.Sprintf("Category %02d", i), "", tc.currentUserID)
		category.CreatedAt = category.CreatedAt.Add(time.Duration(i) * time.Second)
		if err := tc.app.Repos.Categories.Create(context.Background(), category); err != nil {
			return fmt.Errorf("failed to seed category %d: %w", i, err)
		}
	}
	return nil
}

func iHaveACategoryNamed(ctx context.Context, name string) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`{"name":%q}`, name)
	if err := tc.send("POST", "/api/v1/categories", body); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to create category %q: status %d, body %s",
			name, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func iHaveExpensesInThatCategory(ctx context.Context, count int) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}
	if tc.currentCategoryID == uuid.Nil {
		return fmt.Errorf("no category created yet")
	}

	for i := 0; i < count; i++ {
		body := fmt.Sprintf(`{"name":"expense %d","value":10.00,"category_id":%q}`,
			i, tc.currentCategoryID)
		if err := tc.send("POST", "/api/v1/expenses", body); err != nil {
			return err
		}
		if tc.response.StatusCode != http.StatusCreated {
			return fmt.Errorf("failed to seed expense %d: status %d, body %s",
				i, tc.response.StatusCode, tc.responseBody)
		}
	}
	return nil
}

func theFollowingRecordsExist(ctx context.Context, kindName string, table *godog.Table) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	kind := entity.RecordKindIncome
	if kindName == "expenses" {
		kind = entity.RecordKindExpense
	}

	if len(table.Rows) < 2 {
		return fmt.Errorf("table needs a header row and at least one data row")
	}

	columns := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	for _, row := range table.Rows[1:] {
		cell := func(name string) string {
			if i, ok := columns[name]; ok && i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}

		value, err := strconv.ParseInt(cell("value"), 10, 64)
		if err != nil {
			return fmt.Errorf("bad value %q: %w", cell("value"), err)
		}

		record := entity.NewRecord(tc.currentUserID, kind, cell("name"), value, "", nil)
		if created := cell("created_at"); created != "" {
			at, err := time.Parse("2006-01-02", created)
			if err != nil {
				return fmt.Errorf("bad created_at %q: %w", created, err)
			}
			record.CreatedAt = at.UTC()
			record.UpdatedAt = record.CreatedAt
		}

		if err := tc.app.Repos.Records.Create(context.Background(), record); err != nil {
			return fmt.Errorf("failed to seed record %q: %w", cell("name"), err)
		}
	}
	return nil
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expected int) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expected, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	value, err := tc.lookup(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q: expected %q, got %q. Body: %s",
			field, expected, actual, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}
	_, err = tc.lookup(field)
	return err
}

func theResponseFieldShouldBeNull(ctx context.Context, field string) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	value, err := tc.lookup(field)
	if err != nil {
		return err
	}
	if value != nil {
		return fmt.Errorf("field %q: expected null, got %v", field, value)
	}
	return nil
}

func theResponseFieldShouldHaveEntries(ctx context.Context, field string, expected int) error {
	tc, err := GetTestContext(ctx)
	if err != nil {
		return err
	}

	value, err := tc.lookup(field)
	if err != nil {
		return err
	}
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not a list", field)
	}
	if len(list) != expected {
		return fmt.Errorf("field %q: expected %d entries, got %d", field, expected, len(list))
	}
	return nil
}

func theResponseShouldListResults(ctx context.Context, expected int) error {
	return theResponseFieldShouldHaveEntries(ctx, "results", expected)
}

// Helpers

// send performs an HTTP request against the scenario's server. The endpoint
// may reference {category_id} and {record_id}, replaced with the ids captured
// from earlier responses.
func (tc *TestContext) send(method, endpoint, body string) error {
	endpoint = strings.ReplaceAll(endpoint, "{category_id}", tc.currentCategoryID.String())
	endpoint = strings.ReplaceAll(endpoint, "{record_id}", tc.currentRecordID.String())

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	tc.responseJSON = nil
	if len(tc.responseBody) > 0 {
		_ = json.Unmarshal(tc.responseBody, &tc.responseJSON)
	}

	tc.captureIDs(method, endpoint)
	return nil
}

// captureIDs remembers the id of a freshly created category or record so
// later steps can address it.
func (tc *TestContext) captureIDs(method, endpoint string) {
	if method != "POST" || tc.response.StatusCode != http.StatusCreated {
		return
	}
	data, ok := tc.responseJSON.(map[string]any)
	if !ok {
		return
	}
	raw, _ := data["id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return
	}

	switch {
	case strings.HasPrefix(endpoint, "/api/v1/categories"):
		tc.currentCategoryID = id
	case strings.HasPrefix(endpoint, "/api/v1/incomes"), strings.HasPrefix(endpoint, "/api/v1/expenses"):
		tc.currentRecordID = id
	}
}

// captureSession stores the token pair and user id from an auth response.
func (tc *TestContext) captureSession() error {
	data, ok := tc.responseJSON.(map[string]any)
	if !ok {
		return fmt.Errorf("auth response is not an object: %s", tc.responseBody)
	}

	tc.accessToken, _ = data["access_token"].(string)
	tc.refreshToken, _ = data["refresh_token"].(string)
	if tc.accessToken == "" || tc.refreshToken == "" {
		return fmt.Errorf("auth response is missing tokens: %s", tc.responseBody)
	}

	user, ok := data["user"].(map[string]any)
	if !ok {
		return fmt.Errorf("auth response is missing the user: %s", tc.responseBody)
	}
	raw, _ := user["id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("auth response has a bad user id %q", raw)
	}
	tc.currentUserID = id
	return nil
}

// lookup resolves a dotted path like "results.0.value" in the response JSON.
func (tc *TestContext) lookup(path string) (any, error) {
	current := tc.responseJSON
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response. Body: %s", path, tc.responseBody)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("bad index %q in path %q", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field %q not found in response. Body: %s", path, tc.responseBody)
		}
	}
	return current, nil
}
