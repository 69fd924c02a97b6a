// Package main 启动应用程序
package main

import "github.com/yeisme/tenantvault/pkg/cmd"

//	@title			TenantVault API
//	@version		1.0
//	@description	TenantVault 是一个租户生命周期管理服务，提供租户安全删除、隔离区归档、访问解析和登录门禁等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@contact.name	yeisme
//	@contact.email	yefun2004@gmail.com.

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
