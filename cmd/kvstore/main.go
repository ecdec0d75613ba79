package main

import (
	"github.com/galdor/go-service/pkg/service"
)

func main() {
	service.Run("kvstore", "an ordered key-value storage server", NewService())
}
