package controllers

import (
	"sync"

	"github.com/socioclube/portal/internal/pkg/billing"
	"github.com/socioclube/portal/internal/pkg/credential"
	"github.com/socioclube/portal/internal/pkg/database"
	"github.com/socioclube/portal/internal/pkg/env"
	"github.com/socioclube/portal/internal/pkg/jobqueue"
	"github.com/socioclube/portal/internal/pkg/storage"
)

var (
	depsMu      sync.RWMutex
	queueClient *jobqueue.Client
	objectStore *storage.Client
)

// SetJobQueue wires the shared task client into the controllers.
func SetJobQueue(client *jobqueue.Client) {
	depsMu.Lock()
	defer depsMu.Unlock()
	queueClient = client
}

// SetObjectStorage wires the S3 client into the controllers. May stay nil
// when no object storage is configured.
func SetObjectStorage(client *storage.Client) {
	depsMu.Lock()
	defer depsMu.Unlock()
	objectStore = client
}

func jobQueueClient() *jobqueue.Client {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return queueClient
}

func objectStorage() *storage.Client {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return objectStore
}

func publicBaseURL() string {
	return env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000")
}

func credentialService() *credential.Service {
	return credential.NewServiceFromDB(database.GetDB(), publicBaseURL())
}

func billingService() *billing.Service {
	return billing.NewServiceFromDB(database.GetDB(), credentialService())
}
