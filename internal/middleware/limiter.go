// limiter.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Paliers de limitation
const (
	// Auth / login (strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// Reste de l'API
	limitGeneral = rate.Limit(20)
	burstGeneral = 40
)

// visiteur garde le limiteur et la dernière activité d'une IP.
type visiteur struct {
	limiter *rate.Limiter
	vuLe    time.Time
}

var (
	visiteurs = make(map[string]*visiteur)
	mu        sync.Mutex
)

func init() {
	go nettoyerVisiteurs()
}

func getVisiteur(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, ok := visiteurs[key]
	if !ok {
		limiter := rate.NewLimiter(r, b)
		visiteurs[key] = &visiteur{limiter, time.Now()}
		return limiter
	}
	v.vuLe = time.Now()
	return v.limiter
}

func nettoyerVisiteurs() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visiteurs {
			if time.Since(v.vuLe) > 3*time.Minute {
				delete(visiteurs, key)
			}
		}
		mu.Unlock()
	}
}

func limiterAvec(prefix string, r rate.Limit, b int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := prefix + c.ClientIP()
		if !getVisiteur(key, r, b).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "trop de requêtes"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitStrict protège les routes d'authentification.
func RateLimitStrict() gin.HandlerFunc {
	return limiterAvec("strict:", limitStrict, burstStrict)
}

// RateLimit protège le reste de l'API.
func RateLimit() gin.HandlerFunc {
	return limiterAvec("general:", limitGeneral, burstGeneral)
}
