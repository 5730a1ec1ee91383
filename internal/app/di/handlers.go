package di

import (
	"log/slog"

	"finance_tracker/internal/app/router"
	goalhandler "finance_tracker/internal/feature/goal/transport/handler"
	goalusecase "finance_tracker/internal/feature/goal/usecase"
	limithandler "finance_tracker/internal/feature/limit/transport/handler"
	limitusecase "finance_tracker/internal/feature/limit/usecase"
	txhandler "finance_tracker/internal/feature/transaction/transport/handler"
	txusecase "finance_tracker/internal/feature/transaction/usecase"
	userhandler "finance_tracker/internal/feature/user/transport/handler"
	userusecase "finance_tracker/internal/feature/user/usecase"
)

// NewHandlers builds the usecases over repos and the HTTP handlers over them.
// A nil revoker keeps logout stateless.
func NewHandlers(repos Repositories, tokens userusecase.TokenGenerator, revoker userhandler.TokenRevoker, log *slog.Logger) router.Handlers {
	var userOpts []userhandler.Option
	if revoker != nil {
		userOpts = append(userOpts, userhandler.WithTokenRevoker(revoker))
	}

	txUC := txusecase.NewTransactionUsecase(repos.Transactions)

	return router.Handlers{
		Users:        userhandler.NewUserHandler(userusecase.NewUserUsecase(repos.Users, tokens), userOpts...),
		Transactions: txhandler.NewTransactionHandler(txUC),
		Statistics:   txhandler.NewStatisticsHandler(txUC),
		Goals:        goalhandler.NewGoalHandler(goalusecase.NewGoalUsecase(repos.Goals)),
		Limits: limithandler.NewSpendingLimitHandler(
			limitusecase.NewSpendingLimitUsecase(repos.Limits),
			limitusecase.NewNotificationUsecase(repos.Limits, repos.Transactions, log),
		),
	}
}
