package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	userID       int64
	// users maps e-mail to id for accounts created in the scenario
	users map[string]int64
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:    tc,
		users: make(map[string]int64),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the portal is running$`, s.thePortalIsRunning)
	sc.Step(`^I am logged in as the administrator$`, s.iAmLoggedInAsTheAdministrator)

	// Account steps
	sc.Step(`^a teacher registers with e-mail "([^"]*)" and password "([^"]*)"$`, s.aTeacherRegisters)
	sc.Step(`^I log in with "([^"]*)" and password "([^"]*)"$`, s.iLogIn)
	sc.Step(`^the administrator sets the status of "([^"]*)" to "([^"]*)"$`, s.theAdministratorSetsStatus)
	sc.Step(`^an active teacher "([^"]*)" with password "([^"]*)" is logged in$`, s.anActiveTeacherIsLoggedIn)

	// Request steps
	sc.Step(`^I send a GET request to "([^"]*)"$`, s.iSendGET)
	sc.Step(`^I send a POST request to "([^"]*)" with:$`, s.iSendPOST)
	sc.Step(`^I save a plan with content "([^"]*)"$`, s.iSaveAPlan)
	sc.Step(`^I request my plan history$`, s.iRequestMyPlanHistory)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the response should be a list of (\d+) items?$`, s.theResponseShouldBeAListOf)

	// Session steps
	registerSessionSteps(s, sc)
}

func (s *StepsContext) thePortalIsRunning() error {
	if err := s.doRequest("GET", "/api/health", nil); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

// doRequest sends a JSON request and records the response
func (s *StepsContext) doRequest(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				return err
			}
			reader = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) decodeResponse(v interface{}) error {
	if err := json.Unmarshal(s.responseBody, v); err != nil {
		return fmt.Errorf("response is not valid JSON: %w (body: %s)", err, string(s.responseBody))
	}
	return nil
}

// login authenticates and keeps the token for later requests
func (s *StepsContext) login(identifier, password string) error {
	s.authToken = ""
	if err := s.doRequest("POST", "/api/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	}); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return nil
	}

	var out struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := s.decodeResponse(&out); err != nil {
		return err
	}
	s.authToken = out.Token
	s.userID = out.User.ID
	return nil
}

func (s *StepsContext) iAmLoggedInAsTheAdministrator() error {
	if err := s.login(adminEmail, adminPassword); err != nil {
		return err
	}
	if s.authToken == "" {
		return fmt.Errorf("administrator login failed with status %d: %s", s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iLogIn(identifier, password string) error {
	return s.login(identifier, password)
}

func (s *StepsContext) aTeacherRegisters(email, password string) error {
	if err := s.doRequest("POST", "/api/auth/register", map[string]string{
		"email":          email,
		"password":       password,
		"professor_nome": "Professor " + email,
		"escola":         "Escola Primária nº 1",
		"provincia":      "Luanda",
		"municipio":      "Belas",
	}); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return nil
	}
	var out struct {
		ID int64 `json:"id"`
	}
	if err := s.decodeResponse(&out); err != nil {
		return err
	}
	s.users[email] = out.ID
	return nil
}

func (s *StepsContext) theAdministratorSetsStatus(email, status string) error {
	id, ok := s.users[email]
	if !ok {
		return fmt.Errorf("user %s was not registered in this scenario", email)
	}
	token, userID := s.authToken, s.userID
	if err := s.iAmLoggedInAsTheAdministrator(); err != nil {
		return err
	}
	err := s.doRequest("POST", "/api/admin/update-user", map[string]interface{}{
		"id":     id,
		"status": status,
	})
	s.authToken, s.userID = token, userID
	if err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("update-user failed with status %d: %s", s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) anActiveTeacherIsLoggedIn(email, password string) error {
	if err := s.aTeacherRegisters(email, password); err != nil {
		return err
	}
	if _, ok := s.users[email]; !ok {
		return fmt.Errorf("registration of %s failed with status %d", email, s.response.StatusCode)
	}
	if err := s.theAdministratorSetsStatus(email, "ativo"); err != nil {
		return err
	}
	if err := s.login(email, password); err != nil {
		return err
	}
	if s.authToken == "" {
		return fmt.Errorf("login of %s failed with status %d", email, s.response.StatusCode)
	}
	return nil
}

func (s *StepsContext) iSendGET(path string) error {
	return s.doRequest("GET", path, nil)
}

func (s *StepsContext) iSendPOST(path string, body *godog.DocString) error {
	return s.doRequest("POST", path, body.Content)
}

func (s *StepsContext) iSaveAPlan(content string) error {
	return s.doRequest("POST", "/api/plans/save", map[string]interface{}{
		"userId":   s.userID,
		"content":  content,
		"metadata": map[string]string{"disciplina": "Matemática", "classe": "5ª Classe"},
	})
}

func (s *StepsContext) iRequestMyPlanHistory() error {
	return s.doRequest("GET", fmt.Sprintf("/api/plans/history/%d", s.userID), nil)
}

func (s *StepsContext) theResponseStatusShouldBe(expected int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	var out map[string]interface{}
	if err := s.decodeResponse(&out); err != nil {
		return err
	}
	value, ok := out[field]
	if !ok {
		return fmt.Errorf("field %q not in response: %s", field, string(s.responseBody))
	}
	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected response to contain %q, got: %s", text, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldBeAListOf(n int) error {
	var out []json.RawMessage
	if err := s.decodeResponse(&out); err != nil {
		return err
	}
	if len(out) != n {
		return fmt.Errorf("expected %d items, got %d: %s", n, len(out), string(s.responseBody))
	}
	return nil
}
