package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenID 生成全局唯一 ID, 用于邮件发件箱等不依赖自增主键的表
func GenID() int64 {
	return node.Generate().Int64()
}
