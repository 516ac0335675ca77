package main

import "github.com/okian/skillbudget/cmd/skillplan/root"

func main() {
	root.Execute()
}
