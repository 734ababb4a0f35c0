package cache

import "fmt"

// ImportProposalKey 待决导入内容
func ImportProposalKey(id string) string {
	return "import:proposal:" + id
}

// ImportOwnerKey 管理员当前的待决导入 ID
func ImportOwnerKey(adminID uint) string {
	return fmt.Sprintf("import:owner:%d", adminID)
}

// ImportBusyKey 管理员导入进行中标记
func ImportBusyKey(adminID uint) string {
	return fmt.Sprintf("import:busy:%d", adminID)
}
