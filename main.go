package main

import (
	"context"

	"github.com/shandysiswandi/godna/internal/app"
)

func main() {
	application := app.New()

	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()

	application.Stop(ctx)
}
