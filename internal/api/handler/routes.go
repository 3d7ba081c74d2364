package handler

import (
	"net/http"

	"github.com/espada/marketplace-api/internal/api/handler/router"
	"github.com/espada/marketplace-api/internal/usecases/authenticating"
	"github.com/espada/marketplace-api/internal/usecases/cataloging"
	"github.com/espada/marketplace-api/internal/usecases/purchasing"
	"github.com/espada/marketplace-api/internal/usecases/rating"
	"github.com/espada/marketplace-api/internal/usecases/storing"
	"github.com/espada/marketplace-api/internal/usecases/subscribing"
	"github.com/espada/marketplace-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/signup",
			Method:  http.MethodPost,
			Handler: Signup(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllAccounts()},
		},
	}
}

func Stores(storeService storing.StoreService, rollupService rating.RollupService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/stores",
			Method:  http.MethodGet,
			Handler: ListStores(storeService),
		},
		{
			Path:    "/v1/stores/:id",
			Method:  http.MethodGet,
			Handler: GetStore(storeService),
		},
		{
			Path:    "/v1/stores/:id/hours",
			Method:  http.MethodGet,
			Handler: GetStoreHours(storeService),
		},
		{
			Path:    "/v1/stores/:id/rating",
			Method:  http.MethodGet,
			Handler: GetStoreRating(rollupService),
		},
		{
			Path:        "/v1/stores/:id/ratings",
			Method:      http.MethodPost,
			Handler:     SubmitRating(rollupService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllAccounts()},
		},
		{
			Path:        "/v1/stores/:id/ratings/me",
			Method:      http.MethodGet,
			Handler:     GetUserRating(rollupService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllAccounts()},
		},
	}
}

func Products(catalogService cataloging.CatalogService, purchaseService purchasing.PurchaseService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/products",
			Method:  http.MethodGet,
			Handler: ListProducts(catalogService),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodGet,
			Handler: GetProduct(catalogService),
		},
		{
			Path:    "/v1/products/:id/purchases",
			Method:  http.MethodGet,
			Handler: GetPurchaseHistory(purchaseService),
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodPost,
			Handler:     CreateProduct(catalogService),
			Middlewares: []func(http.Handler) http.Handler{middleware.BusinessOnly()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodPut,
			Handler:     UpdateSetPrice(catalogService),
			Middlewares: []func(http.Handler) http.Handler{middleware.BusinessOnly()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteProduct(catalogService),
			Middlewares: []func(http.Handler) http.Handler{middleware.BusinessOnly()},
		},
		{
			Path:        "/v1/products/:id/purchases",
			Method:      http.MethodPost,
			Handler:     SubmitPurchase(purchaseService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllAccounts()},
		},
	}
}

func Subscriptions(service subscribing.SubscriptionService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/subscriptions",
			Method:      http.MethodPost,
			Handler:     CreateSubscription(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.BusinessOnly()},
		},
		{
			Path:        "/v1/subscriptions/:ownerID",
			Method:      http.MethodGet,
			Handler:     GetSubscription(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.BusinessOnly()},
		},
	}
}

func Reports(service subscribing.SubscriptionService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports",
			Method:      http.MethodGet,
			Handler:     GetSubscriptionReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.BusinessOnly()},
		},
	}
}
