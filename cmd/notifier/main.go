package main

import (
	"doctor-booking/cmd/bootstrap"
)

func main() {
	bootstrap.Run("notifier", bootstrap.NotifierModule)
}
