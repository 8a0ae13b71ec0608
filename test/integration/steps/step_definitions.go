//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()

	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) iAmAuthenticatedAsANewUser() error {
	t.currentUserID = uuid.New()

	token, err := adapters.SignAccessToken(testJWTSecret, t.currentUserID, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) iAmAuthenticatedWithAnExpiredToken() error {
	t.currentUserID = uuid.New()
	now := time.Now().UTC()

	claims := adapters.CustomClaims{
		UserID:    t.currentUserID.String(),
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-16 * time.Minute)),
			Subject:   t.currentUserID.String(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate expired token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) aCategoryWithBudgetLimit(key, name, limit string) error {
	amount, err := decimal.NewFromString(limit)
	if err != nil {
		return fmt.Errorf("invalid budget limit '%s': %w", limit, err)
	}
	return t.createCategory(key, name, decimal.NewNullDecimal(amount))
}

func (t *testContext) aCategoryWithoutBudgetLimit(key, name string) error {
	return t.createCategory(key, name, decimal.NullDecimal{})
}

func (t *testContext) createCategory(key, name string, limit decimal.NullDecimal) error {
	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:          uuid.New(),
		UserID:      t.currentUserID,
		Key:         key,
		Name:        name,
		BudgetLimit: limit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return t.db.DbConn.Create(categoryModel).Error
}

func (t *testContext) anExpense(amount, category, date string) error {
	return t.createExpense(t.currentUserID, amount, category, date, "seeded expense")
}

func (t *testContext) anExpenseDescribedAs(amount, category, date, description string) error {
	return t.createExpense(t.currentUserID, amount, category, date, description)
}

func (t *testContext) anExpenseForAnotherUser(amount, category, date string) error {
	return t.createExpense(uuid.New(), amount, category, date, "someone else's expense")
}

func (t *testContext) createExpense(userID uuid.UUID, amount, category, date, description string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date '%s': %w", date, err)
	}

	now := time.Now().UTC()
	expenseModel := &model.ExpenseModel{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    category,
		Date:        day,
		Amount:      value,
		Description: description,
		Tags:        model.TagList{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return t.db.DbConn.Create(expenseModel).Error
}

func (t *testContext) theCacheIsUnavailable() error {
	mock.StopRedis()
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	content = strings.ReplaceAll(content, "{{expense_id}}", t.lastExpenseID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Capture the created expense ID
	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastExpenseID = id
		}
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %v", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	raw, err := json.Marshal(t.response.body)
	if err != nil {
		return err
	}
	if !strings.Contains(string(raw), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(raw))
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	parent := any(body)
	last := field
	if i := strings.LastIndex(field, "."); i >= 0 {
		parent = getFieldValue(body, field[:i])
		last = field[i+1:]
	}
	m, ok := parent.(map[string]any)
	if !ok {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	value, present := m[last]
	if !present {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	switch v := getFieldValue(body, field).(type) {
	case []any:
		if len(v) != quantity {
			return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(v))
		}
	case map[string]any:
		if len(v) != quantity {
			return fmt.Errorf("field '%s' expected %d entries, got %d", field, quantity, len(v))
		}
	default:
		return fmt.Errorf("field '%s' is not a list or object: %v", field, v)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	var count int64
	if err := t.db.DbConn.Model(entity).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theSummaryShouldBeCached(year, month int) error {
	cached, err := t.summaryCached(year, month)
	if err != nil {
		return err
	}
	if !cached {
		return fmt.Errorf("expected summary for %04d-%02d to be cached", year, month)
	}
	return nil
}

func (t *testContext) theSummaryShouldNotBeCached(year, month int) error {
	cached, err := t.summaryCached(year, month)
	if err != nil {
		return err
	}
	if cached {
		return fmt.Errorf("expected summary for %04d-%02d not to be cached", year, month)
	}
	return nil
}

func (t *testContext) summaryCached(year, month int) (bool, error) {
	key := cache.SummaryKey(t.currentUserID, year, time.Month(month))
	n, err := t.redis.Exists(context.Background(), key).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
				continue
			}
			return nil
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
