package main

import "github.com/lu-zhengda/workapi/internal/cli"

func main() {
	cli.Execute()
}
