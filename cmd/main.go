package main

import (
	"doctor-booking/cmd/bootstrap"
)

func main() {
	bootstrap.Run("booking-api", bootstrap.Module)
}
