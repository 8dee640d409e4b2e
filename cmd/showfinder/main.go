package main

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	Execute()
}
