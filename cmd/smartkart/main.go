package main

import "github.com/smartkart/kiosk/internal/delivery/cli"

func main() {
	cli.Execute()
}
