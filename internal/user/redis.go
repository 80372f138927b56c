package user

// KnownUsersKey 是一个 Redis Set 的键，缓存所有已注册用户的ID。
// 游戏会话写入前的用户存在性检查会优先命中这个Set；
// 缓存未命中或Redis不可用时，以数据库查询为准。
const KnownUsersKey = "user:known"
