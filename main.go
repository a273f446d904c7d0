package main

import "github.com/shouni/go-web-contact/cmd"

// main は、ルートコマンドを実行します。エラー時の終了処理は clibase が行います。
func main() {
	cmd.Execute()
}
