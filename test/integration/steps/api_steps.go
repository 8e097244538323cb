package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// fakeJPEG is enough for the upload path, which only checks the extension and size.
var fakeJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0xFF, 0xD9}

func (tc *TestContext) theAPIServerIsRunning() error {
	resp, err := tc.client.Get(tc.env.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (tc *TestContext) theHeaderIsEmpty() error {
	tc.requestHeaders = make(map[string]string)
	tc.accessToken = ""
	return nil
}

func (tc *TestContext) theHeaderContainsTheKeyWith(key, value string) error {
	tc.requestHeaders[key] = value
	return nil
}

func (tc *TestContext) iSendARequestTo(method, path string) error {
	return tc.executeRequest(method, tc.replacePlaceholders(path), nil, "application/json")
}

func (tc *TestContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(tc.replacePlaceholders(body.Content))
	}
	return tc.executeRequest(method, tc.replacePlaceholders(path), payload, "application/json")
}

func (tc *TestContext) iUploadTheReceiptImage(filename, platform string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(fakeJPEG); err != nil {
		return err
	}
	if platform != "" {
		if err := writer.WriteField("platform", platform); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return tc.executeRequest(http.MethodPost, "/api/v1/receipts", buf.Bytes(), writer.FormDataContentType())
}

func (tc *TestContext) iRememberTheResponseFieldAs(field, name string) error {
	value := getFieldValue(tc.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, tc.responseBody)
	}
	tc.remembered[name] = fmt.Sprintf("%v", value)
	return nil
}

func (tc *TestContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", tc.accessToken)
	content = strings.ReplaceAll(content, "{{user_id}}", tc.userID.String())
	for name, value := range tc.remembered {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (tc *TestContext) executeRequest(method, path string, payload []byte, contentType string) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, tc.env.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", contentType)
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	tc.body = nil
	if len(tc.responseBody) > 0 {
		var decoded any
		if err := json.Unmarshal(tc.responseBody, &decoded); err == nil {
			tc.body = decoded
		}
	}
	return nil
}

func (tc *TestContext) theResponseStatusShouldBe(expectedStatus int) error {
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func (tc *TestContext) theResponseShouldBeJSON() error {
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.body == nil {
		return fmt.Errorf("response is not JSON: %s", tc.responseBody)
	}
	return nil
}

func (tc *TestContext) theResponseShouldContain(field string) error {
	body, ok := tc.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %s", tc.responseBody)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %s", field, tc.responseBody)
	}
	return nil
}

func (tc *TestContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value := getFieldValue(tc.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, tc.responseBody)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != tc.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (tc *TestContext) theResponseFieldShouldExist(field string) error {
	if getFieldValue(tc.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, tc.responseBody)
	}
	return nil
}

func (tc *TestContext) theResponseFieldShouldHaveElements(field string, count int) error {
	arr, ok := getFieldValue(tc.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array in response: %s", field, tc.responseBody)
	}
	if len(arr) != count {
		return fmt.Errorf("field '%s' expected %d elements, got %d", field, count, len(arr))
	}
	return nil
}

// getFieldValue walks a dot separated path; numeric segments index arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	var field = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
