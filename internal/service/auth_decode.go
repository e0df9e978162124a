package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/boddenberg/digtecnico-client-go/internal/domain"
)

// The login endpoint has answered with two payload layouts over time.
// Each layout gets its own decoder; they are tried in order and the first
// whose token field is present wins.
//
//	camel: {accessToken, refreshToken, user, organization}
//	snake: {access_token, refresh_token, user, filial|filia}
type loginDecoder struct {
	version    string
	tokenField string
	decode     func(raw json.RawMessage) (*domain.Session, error)
}

var loginDecoders = []loginDecoder{
	{version: "camel", tokenField: "accessToken", decode: decodeCamelLogin},
	{version: "snake", tokenField: "access_token", decode: decodeSnakeLogin},
}

type backendOrg struct {
	ID           domain.FlexString `json:"id"`
	Name         string            `json:"name"`
	Nome         string            `json:"nome"`
	NomeFantasia string            `json:"nome_fantasia"`
}

func (o *backendOrg) label() string {
	if o == nil {
		return ""
	}
	return firstNonEmpty(o.Name, o.Nome, o.NomeFantasia)
}

type backendUser struct {
	ID            domain.FlexString `json:"id"`
	FuncionarioID domain.FlexString `json:"funcionario_id"`
	Name          string            `json:"name"`
	Nome          string            `json:"nome"`
	Username      string            `json:"username"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Telefone      string            `json:"telefone"`
	Avatar        string            `json:"avatar"`
	Role          string            `json:"role"`
	IsAdmin       *bool             `json:"isAdmin"`
	Location      string            `json:"location"`
	Localizacao   string            `json:"localizacao"`
	// Filial is either a plain label or a branch object.
	Filial json.RawMessage `json:"filial"`
}

type camelLoginPayload struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *backendUser `json:"user"`
	Organization *backendOrg  `json:"organization"`
}

type snakeLoginPayload struct {
	AccessToken       string       `json:"access_token"`
	RefreshToken      string       `json:"refresh_token"`
	RefreshTokenCamel string       `json:"refreshToken"`
	User              *backendUser `json:"user"`
	Filial            *backendOrg  `json:"filial"`
	Filia             *backendOrg  `json:"filia"`
}

// decodeLogin turns a login data payload into a session, or fails with a
// login_failed error. It never touches storage.
func decodeLogin(data json.RawMessage) (*domain.Session, string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, "", domain.NewLoginFailedError("Resposta de login inválida")
	}

	for _, d := range loginDecoders {
		raw, ok := fields[d.tokenField]
		if !ok || isJSONNull(raw) {
			continue
		}
		session, err := d.decode(data)
		if err != nil {
			return nil, d.version, err
		}
		return session, d.version, nil
	}
	return nil, "", domain.NewLoginFailedError("Token de acesso ausente na resposta de login")
}

func decodeCamelLogin(raw json.RawMessage) (*domain.Session, error) {
	var p camelLoginPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, domain.NewLoginFailedError("Resposta de login inválida")
	}
	user, err := p.User.record(p.Organization.label())
	if err != nil {
		return nil, err
	}
	return buildSession(p.AccessToken, p.RefreshToken, user)
}

func decodeSnakeLogin(raw json.RawMessage) (*domain.Session, error) {
	var p snakeLoginPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, domain.NewLoginFailedError("Resposta de login inválida")
	}
	org := p.Filial
	if org == nil {
		org = p.Filia
	}
	user, err := p.User.record(org.label())
	if err != nil {
		return nil, err
	}
	return buildSession(p.AccessToken, firstNonEmpty(p.RefreshToken, p.RefreshTokenCamel), user)
}

func buildSession(access, refresh string, user domain.UserRecord) (*domain.Session, error) {
	if strings.TrimSpace(access) == "" {
		return nil, domain.NewLoginFailedError("Token de acesso ausente na resposta de login")
	}
	return &domain.Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// record maps the backend user onto the app's record. orgLabel comes from
// the payload's organization block and wins over a label on the user.
func (u *backendUser) record(orgLabel string) (domain.UserRecord, error) {
	if u == nil {
		return domain.UserRecord{}, domain.NewLoginFailedError("Dados do usuário ausentes na resposta de login")
	}
	id := firstNonEmpty(u.ID.String(), u.FuncionarioID.String())
	if id == "" {
		return domain.UserRecord{}, domain.NewLoginFailedError("Identificador do usuário ausente na resposta de login")
	}

	if orgLabel == "" {
		orgLabel = filialLabel(u.Filial)
	}

	return domain.UserRecord{
		ID:                id,
		Name:              firstNonEmpty(u.Name, u.Nome, u.Username),
		Username:          u.Username,
		Email:             u.Email,
		Phone:             firstNonEmpty(u.Phone, u.Telefone),
		Avatar:            u.Avatar,
		Role:              u.role(),
		OrganizationLabel: orgLabel,
		Location:          firstNonEmpty(u.Location, u.Localizacao),
	}, nil
}

// role: isAdmin=true means admin; otherwise an explicit known role; otherwise technician.
func (u *backendUser) role() domain.Role {
	if u.IsAdmin != nil && *u.IsAdmin {
		return domain.RoleAdmin
	}
	if r, ok := domain.ParseRole(u.Role); ok {
		return r
	}
	return domain.RoleTechnician
}

func filialLabel(raw json.RawMessage) string {
	if isJSONNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var org backendOrg
	if err := json.Unmarshal(raw, &org); err == nil {
		return org.label()
	}
	return ""
}

func isJSONNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
