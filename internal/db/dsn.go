package db

import (
	"net/url"
	"regexp"
	"strings"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN accepte un DSN au format URL (postgres://...) ou une liste
// clé=valeur lib/pq. Les guillemets et espaces superflus sont retirés et
// sslmode=disable est ajouté par défaut au format clé=valeur.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// ToURLDSN convertit un DSN clé=valeur en forme URL, attendue par
// golang-migrate. Un DSN déjà en forme URL est retourné tel quel.
func ToURLDSN(dsn string) string {
	if dsn == "" || strings.HasPrefix(strings.ToLower(dsn), "postgres") && strings.Contains(dsn, "://") {
		return dsn
	}
	m := map[string]string{}
	for _, part := range strings.Fields(dsn) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			m[strings.ToLower(kv[0])] = kv[1]
		}
	}
	host, user, dbname := m["host"], m["user"], m["dbname"]
	if host == "" || user == "" || dbname == "" {
		return dsn
	}
	u := &url.URL{Scheme: "postgres", Host: host}
	if p := m["port"]; p != "" {
		u.Host = host + ":" + p
	}
	if pass := m["password"]; pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	u.Path = "/" + dbname
	if ssl := m["sslmode"]; ssl != "" {
		q := url.Values{}
		q.Set("sslmode", ssl)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
