package main

import (
	"doctor-booking/cmd/bootstrap"
)

func main() {
	bootstrap.Run("auditor", bootstrap.AuditModule)
}
