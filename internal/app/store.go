package app

import (
	"npmfootprint/internal/report"
	redisStorage "npmfootprint/internal/storage/redis"
)

func (a *App) newDocumentStore() *redisStorage.Client[report.Document] {
	return redisStorage.NewClient[report.Document](
		a.settings.RedisAddr,
		a.settings.RedisPassword,
		a.settings.RedisDB,
		marshalDocument,
		unmarshalDocument,
	)
}

func marshalDocument(doc report.Document) (string, error) {
	data, err := report.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalDocument(s string) (report.Document, error) {
	return report.Unmarshal([]byte(s))
}
