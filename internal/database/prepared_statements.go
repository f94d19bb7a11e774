package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

// Requêtes fréquentes du keyspace users. gocql prépare et met en cache
// les statements par texte de requête ; chaque getter rend un
// *gocql.Query neuf, bindable depuis des requêtes concurrentes.
const (
	cqlGetUserByEmail = "SELECT user_id FROM users_by_email WHERE email = ?"
	cqlGetUserByID    = `SELECT email, password, name, role, provider, provider_id
		FROM users WHERE user_id = ?`
	cqlInsertUser = `INSERT INTO users (user_id, email, password, name, role, provider, provider_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	cqlInsertUserByEmail = "INSERT INTO users_by_email (email, user_id) VALUES (?, ?)"
)

var (
	usersQuerySession *gocql.Session

	preparedOnce sync.Once
)

// InitPreparedStatements épingle la session users au démarrage
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Session users indisponible pour les requêtes préparées: %v", err)
			return
		}
		usersQuerySession = session
		log.Println("✅ Requêtes users initialisées")
	})
}

func usersQuery(stmt string) *gocql.Query {
	if usersQuerySession == nil {
		session, err := GetUsersSession()
		if err != nil {
			return nil
		}
		usersQuerySession = session
	}
	return usersQuerySession.Query(stmt)
}

func GetPreparedGetUserByEmail() *gocql.Query {
	return usersQuery(cqlGetUserByEmail)
}

func GetPreparedGetUserByID() *gocql.Query {
	return usersQuery(cqlGetUserByID)
}

func GetPreparedInsertUser() *gocql.Query {
	return usersQuery(cqlInsertUser)
}

func GetPreparedInsertUserByEmail() *gocql.Query {
	return usersQuery(cqlInsertUserByEmail)
}
