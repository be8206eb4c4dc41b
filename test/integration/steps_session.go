package integration

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ppa-angola/portal-pedagogico/pkg/session"
)

func registerSessionSteps(s *StepsContext, sc *godog.ScenarioContext) {
	sc.Step(`^I should receive a valid session token$`, s.iShouldReceiveAValidSessionToken)
	sc.Step(`^the session token should mark me as an administrator$`, s.theSessionTokenShouldMarkAdmin)
	sc.Step(`^I use the session token "([^"]*)"$`, s.iUseTheSessionToken)
	sc.Step(`^I use a session token signed with another secret$`, s.iUseAForeignSessionToken)
}

func (s *StepsContext) parseSessionToken() (*session.Claims, error) {
	if s.authToken == "" {
		return nil, fmt.Errorf("no session token was issued: %s", string(s.responseBody))
	}
	claims := &session.Claims{}
	_, err := jwt.ParseWithClaims(s.authToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(session.Issuer))
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	return claims, nil
}

func (s *StepsContext) iShouldReceiveAValidSessionToken() error {
	claims, err := s.parseSessionToken()
	if err != nil {
		return err
	}
	if claims.Subject != strconv.FormatInt(s.userID, 10) {
		return fmt.Errorf("expected subject %d, got %q", s.userID, claims.Subject)
	}
	if claims.ExpiresAt == nil {
		return fmt.Errorf("session token has no expiry")
	}
	return nil
}

func (s *StepsContext) theSessionTokenShouldMarkAdmin() error {
	claims, err := s.parseSessionToken()
	if err != nil {
		return err
	}
	if !claims.Admin {
		return fmt.Errorf("expected the adm claim to be set")
	}
	return nil
}

func (s *StepsContext) iUseTheSessionToken(token string) error {
	s.authToken = token
	return nil
}

func (s *StepsContext) iUseAForeignSessionToken() error {
	m, _, err := session.NewManager("some-other-secret", time.Hour)
	if err != nil {
		return err
	}
	token, _, err := m.Issue(1, true)
	if err != nil {
		return err
	}
	s.authToken = token
	return nil
}
